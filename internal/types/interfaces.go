package types

import "time"

// Clock abstracts time for testability. All temporal decisions in the
// advisory pipeline go through a Clock so tests can pin "now".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time (always UTC).
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time { return time.Now().UTC() }

// FixedClock implements Clock with a pinned instant. Intended for tests and
// for replaying the pipeline against a reference time.
type FixedClock struct {
	T time.Time
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time { return c.T }

// Logger defines the structured logging interface used throughout the
// service. Satisfied by the slog adapter in cmd and by no-op fakes in tests.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}

// Package notify reconciles the advisory pipeline's output against the
// device-notification bookkeeping: it decides which tasks and suggestions
// warrant a local notification, schedules new ones through an injected
// capability port, leaves already-scheduled ones alone, and prunes expired
// records. All side effects go through the persistence and scheduling
// ports; nothing else is touched.
package notify

import (
	"context"

	"cropwatch/internal/types"
)

// Scheduler is the notification-scheduling capability the reconciler
// consumes. Implementations wrap whatever actually raises notifications on
// the device or gateway; the reconciler never talks to an OS directly.
type Scheduler interface {
	// Schedule requests delivery of the notification at n.ScheduledFor.
	Schedule(ctx context.Context, n types.ScheduledNotification) error

	// Cancel revokes a previously scheduled notification by its ID.
	// Cancelling an unknown ID is not an error.
	Cancel(ctx context.Context, id string) error

	// CancelAll revokes every scheduled notification in one call.
	CancelAll(ctx context.Context) error
}

// Compile-time assertion that LogScheduler implements Scheduler.
var _ Scheduler = (*LogScheduler)(nil)

// LogScheduler is a Scheduler that only logs. It is the default when no
// push gateway is configured, keeping the reconciler's bookkeeping exact
// without delivering anything.
type LogScheduler struct {
	logger types.Logger
}

// NewLogScheduler creates a log-only Scheduler.
func NewLogScheduler(logger types.Logger) *LogScheduler {
	return &LogScheduler{logger: logger}
}

// Schedule logs the scheduling request.
func (s *LogScheduler) Schedule(_ context.Context, n types.ScheduledNotification) error {
	s.logger.Info("notification scheduled",
		"id", n.ID,
		"kind", string(n.Kind),
		"scheduled_for", n.ScheduledFor,
		"title", n.Title,
	)
	return nil
}

// Cancel logs the cancellation request.
func (s *LogScheduler) Cancel(_ context.Context, id string) error {
	s.logger.Info("notification cancelled", "id", id)
	return nil
}

// CancelAll logs the bulk cancellation.
func (s *LogScheduler) CancelAll(_ context.Context) error {
	s.logger.Info("all notifications cancelled")
	return nil
}

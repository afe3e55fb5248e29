// Package weather supplies WeatherSnapshots to the advisory pipeline. The
// provider is an external collaborator: the engine treats its output as an
// opaque input and never cares how it was fetched or cached.
package weather

import (
	"context"

	"cropwatch/internal/types"
)

// Provider fetches the weather snapshot for a coordinate. Implementations
// handle their own transport concerns (retries, breakers); callers treat a
// failed fetch as "no weather", which the engine answers with an empty
// advisory list.
type Provider interface {
	Fetch(ctx context.Context, lat, lon float64) (*types.WeatherSnapshot, error)
}

// StaticProvider returns a fixed snapshot. Used by tests and by offline
// demo runs.
type StaticProvider struct {
	Snapshot *types.WeatherSnapshot
	Err      error
}

// Fetch returns the configured snapshot or error.
func (p *StaticProvider) Fetch(context.Context, float64, float64) (*types.WeatherSnapshot, error) {
	return p.Snapshot, p.Err
}

// Package advisor implements the weather-driven suggestion engine. A
// registry of independent rules evaluates a weather snapshot against the
// farmer's location, crop selection, and manually scheduled tasks; each rule
// contributes zero or more prioritized advisories. The engine is pure and
// synchronous: no I/O, no stored state, deterministic IDs so dismissal
// tracking works across runs.
package advisor

import (
	"sort"
	"time"

	"cropwatch/internal/types"
)

// RuleInput carries everything a rule may evaluate. Weather is never nil
// when rules run; the engine short-circuits on missing data first.
type RuleInput struct {
	Weather   *types.WeatherSnapshot
	Location  types.LocationContext
	Crops     types.CropContext
	FarmTasks []types.FarmTaskRef

	// Now and Loc anchor validity windows. Loc is the farm's time zone.
	Now time.Time
	Loc *time.Location
}

// Rule is a single named advisory rule. Evaluate returns the suggestions the
// rule derives from the input, or nil when the rule does not fire.
type Rule struct {
	Name     string
	Evaluate func(in RuleInput) []types.Suggestion
}

// Engine runs the rule catalogue and assembles the prioritized advisory
// list.
type Engine struct {
	clock types.Clock
	loc   *time.Location
	rules []Rule
}

// NewEngine creates an Engine with the standard rule catalogue. loc is the
// time zone advisories expire in; nil falls back to UTC.
func NewEngine(clock types.Clock, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		clock: clock,
		loc:   loc,
		rules: standardRules(),
	}
}

// Generate evaluates all rules against the weather snapshot and returns the
// advisory list sorted by priority (high first, ties keep rule order).
//
// Missing data is not an error for this pure function: a nil snapshot, nil
// current conditions, or an empty daily forecast yields an empty list and
// the caller decides whether that is a problem.
//
// When the typhoon, heavy-rainfall, and strong-wind rules all fire in the
// same run, their individual advisories are replaced by a single
// consolidated multiple-risks warning.
func (e *Engine) Generate(
	weather *types.WeatherSnapshot,
	location types.LocationContext,
	crops types.CropContext,
	farmTasks []types.FarmTaskRef,
) []types.Suggestion {
	if weather == nil || weather.Current == nil || len(weather.Daily) == 0 {
		return []types.Suggestion{}
	}

	in := RuleInput{
		Weather:   weather,
		Location:  location,
		Crops:     crops,
		FarmTasks: farmTasks,
		Now:       e.clock.Now(),
		Loc:       e.loc,
	}

	fired := make(map[string][]types.Suggestion, len(e.rules))
	var order []string
	for _, rule := range e.rules {
		out := rule.Evaluate(in)
		if len(out) == 0 {
			continue
		}
		fired[rule.Name] = out
		order = append(order, rule.Name)
	}

	// Extreme combination: when typhoon, heavy rain, and strong wind all
	// trigger independently, a single consolidated warning replaces them.
	if len(fired[ruleTyphoon]) > 0 && len(fired[ruleHeavyRain]) > 0 && len(fired[ruleStrongWind]) > 0 {
		fired[ruleTyphoon] = nil
		fired[ruleHeavyRain] = nil
		fired[ruleStrongWind] = nil
		fired[ruleMultipleRisks] = []types.Suggestion{multipleRisksSuggestion(in)}
		order = append(order, ruleMultipleRisks)
	}

	var suggestions []types.Suggestion
	for _, name := range order {
		suggestions = append(suggestions, fired[name]...)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority.Weight() < suggestions[j].Priority.Weight()
	})
	if suggestions == nil {
		suggestions = []types.Suggestion{}
	}
	return suggestions
}

// FilterDismissed removes suggestions the farmer has dismissed and
// suggestions whose validity window has passed. Non-dismissible advisories
// survive dismissal but still expire.
func FilterDismissed(suggestions []types.Suggestion, dismissed map[string]bool, now time.Time) []types.Suggestion {
	out := make([]types.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Expired(now) {
			continue
		}
		if s.Dismissible && dismissed[s.ID] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// validUntil returns the advisory expiry: now+24h, capped at the end of the
// forecast day the advisory is based on.
func validUntil(now time.Time, day *types.ForecastDay, loc *time.Location) time.Time {
	expiry := now.Add(24 * time.Hour)
	if day != nil {
		dayEnd := day.Date.AddDays(1).Time(loc)
		if !dayEnd.IsZero() && dayEnd.Before(expiry) {
			expiry = dayEnd
		}
	}
	return expiry
}

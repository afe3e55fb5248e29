package advisor

import (
	"fmt"

	"cropwatch/internal/types"
)

// Rule names double as the prefix of the deterministic suggestion IDs.
const (
	ruleTyphoon          = "typhoon-alert"
	ruleHeavyRain        = "heavy-rain"
	ruleStrongWind       = "strong-wind"
	ruleContinuousRain   = "continuous-rain"
	ruleHeatStress       = "heat-stress"
	ruleScheduleConflict = "schedule-conflict"
	ruleMultipleRisks    = "multiple-risks"
)

// Advisory thresholds. Probabilities are percentages.
const (
	heavyRainProbHigh    = 70.0
	heavyRainProbMedium  = 40.0
	heavyRainVolumeMm    = 30.0
	strongWindKmh        = 30.0
	continuousRainProb   = 40.0
	continuousRainRunLen = 3
	heatStressTempC      = 34.0
	heatStressDryProb    = 15.0
	conflictProbMedium   = 60.0
	conflictProbHigh     = 80.0
)

// standardRules returns the rule catalogue in evaluation order. Order
// matters twice: it is the tie-break within a priority band, and the
// consolidation check in the engine names the first three rules.
func standardRules() []Rule {
	return []Rule{
		{Name: ruleTyphoon, Evaluate: evalTyphoon},
		{Name: ruleHeavyRain, Evaluate: evalHeavyRain},
		{Name: ruleStrongWind, Evaluate: evalStrongWind},
		{Name: ruleContinuousRain, Evaluate: evalContinuousRain},
		{Name: ruleHeatStress, Evaluate: evalHeatStress},
		{Name: ruleScheduleConflict, Evaluate: evalScheduleConflict},
	}
}

// prob returns the day's precipitation probability, treating an unreported
// probability as zero.
func prob(day *types.ForecastDay) float64 {
	if day == nil || day.PrecipitationProb == nil {
		return 0
	}
	return *day.PrecipitationProb
}

func evalTyphoon(in RuleInput) []types.Suggestion {
	if !in.Weather.TyphoonAlert {
		return nil
	}
	today := in.Weather.Today()
	return []types.Suggestion{{
		ID:       fmt.Sprintf("%s:%s", ruleTyphoon, today.Date),
		Type:     types.SuggestionRiskWarning,
		Priority: types.PriorityHigh,
		Title:    "Typhoon warning",
		Message: fmt.Sprintf(
			"A typhoon alert is in effect for %s. Winds of %.0f km/h and heavy rain are expected.",
			in.Location.Label(), in.Weather.Current.WindSpeedKmh,
		),
		Reason:            "A typhoon alert was issued by the weather authority.",
		RecommendedAction: "Secure loose structures, harvest what is ready, and stay off the fields until the alert lifts.",
		ValidUntil:        validUntil(in.Now, today, in.Loc),
		Dismissible:       false,
	}}
}

func evalHeavyRain(in RuleInput) []types.Suggestion {
	today := in.Weather.Today()
	p := prob(today)
	volume := 0.0
	if in.Weather.RainVolumeMm != nil {
		volume = *in.Weather.RainVolumeMm
	}

	switch {
	case p >= heavyRainProbHigh || volume > heavyRainVolumeMm:
		return []types.Suggestion{{
			ID:       fmt.Sprintf("%s:%s:high", ruleHeavyRain, today.Date),
			Type:     types.SuggestionFarmingAdvice,
			Priority: types.PriorityHigh,
			Title:    "Heavy rainfall expected",
			Message: fmt.Sprintf(
				"Heavy rain is expected today in %s (%.0f%% chance of rain).",
				in.Location.Label(), p,
			),
			Reason:            "High precipitation probability or measured rainfall above 30 mm.",
			RecommendedAction: "Delay planting and fertilizer application; applied fertilizer will wash away.",
			ValidUntil:        validUntil(in.Now, today, in.Loc),
			Dismissible:       true,
		}}
	case p >= heavyRainProbMedium:
		return []types.Suggestion{{
			ID:       fmt.Sprintf("%s:%s:medium", ruleHeavyRain, today.Date),
			Type:     types.SuggestionFarmingAdvice,
			Priority: types.PriorityMedium,
			Title:    "Rain likely today",
			Message: fmt.Sprintf(
				"There is a %.0f%% chance of rain today in %s.",
				p, in.Location.Label(),
			),
			Reason:            "Moderate precipitation probability for today.",
			RecommendedAction: "Consider holding off on fertilizer application until the sky clears.",
			ValidUntil:        validUntil(in.Now, today, in.Loc),
			Dismissible:       true,
		}}
	}
	return nil
}

func evalStrongWind(in RuleInput) []types.Suggestion {
	wind := in.Weather.Current.WindSpeedKmh
	if wind <= strongWindKmh {
		return nil
	}
	today := in.Weather.Today()
	return []types.Suggestion{{
		ID:       fmt.Sprintf("%s:%s", ruleStrongWind, today.Date),
		Type:     types.SuggestionFarmingAdvice,
		Priority: types.PriorityMedium,
		Title:    "Strong winds",
		Message: fmt.Sprintf(
			"Winds of %.0f km/h are blowing over %s.",
			wind, in.Location.Label(),
		),
		Reason:            "Current wind speed exceeds 30 km/h.",
		RecommendedAction: "Do not spray pesticides or foliar fertilizer; drift will waste the chemical and harm nearby plots.",
		ValidUntil:        validUntil(in.Now, today, in.Loc),
		Dismissible:       true,
	}}
}

func evalContinuousRain(in RuleInput) []types.Suggestion {
	daily := in.Weather.Daily
	runStart, runLen := 0, 0
	bestStart, bestLen := 0, 0
	for i := range daily {
		if prob(&daily[i]) >= continuousRainProb {
			if runLen == 0 {
				runStart = i
			}
			runLen++
			continue
		}
		if runLen >= continuousRainRunLen {
			bestStart, bestLen = runStart, runLen
			break
		}
		runLen = 0
	}
	if bestLen == 0 && runLen >= continuousRainRunLen {
		bestStart, bestLen = runStart, runLen
	}
	if bestLen < continuousRainRunLen {
		return nil
	}

	start := daily[bestStart]
	lastIdx := bestStart + bestLen - 1
	return []types.Suggestion{{
		ID:       fmt.Sprintf("%s:%s:%d", ruleContinuousRain, start.Date, bestLen),
		Type:     types.SuggestionFarmingAdvice,
		Priority: types.PriorityMedium,
		Title:    "Several days of rain ahead",
		Message: fmt.Sprintf(
			"Rain is likely for %d days in a row starting %s in %s.",
			bestLen, start.Date, in.Location.Label(),
		),
		Reason:            "Three or more consecutive forecast days with at least 40% chance of rain.",
		RecommendedAction: "Clear drainage canals now and check low-lying plots for runoff damage.",
		ValidUntil:        validUntil(in.Now, &daily[lastIdx], in.Loc),
		Dismissible:       true,
	}}
}

func evalHeatStress(in RuleInput) []types.Suggestion {
	today := in.Weather.Today()
	if today.HighTempC < heatStressTempC || prob(today) >= heatStressDryProb {
		return nil
	}
	return []types.Suggestion{{
		ID:       fmt.Sprintf("%s:%s", ruleHeatStress, today.Date),
		Type:     types.SuggestionFarmingAdvice,
		Priority: types.PriorityLow,
		Title:    "Hot and dry today",
		Message: fmt.Sprintf(
			"Temperatures will reach %.0f°C in %s with little chance of rain.",
			today.HighTempC, in.Location.Label(),
		),
		Reason:            "High temperature with a dry forecast stresses young plants.",
		RecommendedAction: "Irrigate early morning or late afternoon and keep seedlings shaded at midday.",
		ValidUntil:        validUntil(in.Now, today, in.Loc),
		Dismissible:       true,
	}}
}

func evalScheduleConflict(in RuleInput) []types.Suggestion {
	var out []types.Suggestion
	for _, task := range in.FarmTasks {
		day := in.Weather.DayFor(task.Date)
		if day == nil {
			continue
		}
		p := prob(day)
		if p < conflictProbMedium {
			continue
		}
		priority := types.PriorityMedium
		if p >= conflictProbHigh {
			priority = types.PriorityHigh
		}
		out = append(out, types.Suggestion{
			ID:       fmt.Sprintf("%s:%s:%s", ruleScheduleConflict, task.ID, task.Date),
			Type:     types.SuggestionScheduleSuggestion,
			Priority: priority,
			Title:    "Rain may disrupt \"" + task.Title + "\"",
			Message: fmt.Sprintf(
				"Your task \"%s\" is scheduled for %s, which has a %.0f%% chance of rain.",
				task.Title, task.Date, p,
			),
			Reason:            "A scheduled task falls on a forecast day with at least 60% chance of rain.",
			RecommendedAction: "Move the task to a drier day in the forecast.",
			ValidUntil:        validUntil(in.Now, day, in.Loc),
			Dismissible:       true,
		})
	}
	return out
}

// multipleRisksSuggestion is the consolidated warning that replaces the
// individual typhoon, heavy-rain, and strong-wind advisories when all three
// fire in the same run.
func multipleRisksSuggestion(in RuleInput) types.Suggestion {
	today := in.Weather.Today()
	return types.Suggestion{
		ID:       fmt.Sprintf("%s:%s", ruleMultipleRisks, today.Date),
		Type:     types.SuggestionRiskWarning,
		Priority: types.PriorityHigh,
		Title:    "Multiple weather risks",
		Message: fmt.Sprintf(
			"A typhoon alert, heavy rain, and winds of %.0f km/h are all affecting %s.",
			in.Weather.Current.WindSpeedKmh, in.Location.Label(),
		),
		Reason:            "Typhoon alert, heavy rainfall, and strong wind conditions are all present.",
		RecommendedAction: "Stop all field work, secure equipment and animals, and follow local evacuation guidance.",
		ValidUntil:        validUntil(in.Now, today, in.Loc),
		Dismissible:       false,
	}
}

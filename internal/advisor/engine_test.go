package advisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwatch/internal/types"
)

var manila = time.FixedZone("PST", 8*3600)

// testNow is 10:00 local on the reference day.
var testNow = time.Date(2026, 8, 30, 2, 0, 0, 0, time.UTC) // 10:00 in UTC+8

func f(v float64) *float64 { return &v }

// snapshotWith builds a baseline calm snapshot: today plus three mild days.
func snapshotWith(mutate func(*types.WeatherSnapshot)) *types.WeatherSnapshot {
	s := &types.WeatherSnapshot{
		Current: &types.CurrentWeather{
			TemperatureC: 30,
			WindSpeedKmh: 10,
			Summary:      "Partly cloudy",
		},
		Daily: []types.ForecastDay{
			{Date: "2026-08-30", PrecipitationProb: f(10), HighTempC: 31, LowTempC: 24},
			{Date: "2026-08-31", PrecipitationProb: f(20), HighTempC: 32, LowTempC: 24},
			{Date: "2026-09-01", PrecipitationProb: f(10), HighTempC: 31, LowTempC: 25},
			{Date: "2026-09-02", PrecipitationProb: f(5), HighTempC: 30, LowTempC: 24},
		},
	}
	if mutate != nil {
		mutate(s)
	}
	return s
}

func newTestEngine() *Engine {
	return NewEngine(types.FixedClock{T: testNow}, manila)
}

func generate(t *testing.T, snap *types.WeatherSnapshot, farmTasks ...types.FarmTaskRef) []types.Suggestion {
	t.Helper()
	return newTestEngine().Generate(snap,
		types.LocationContext{Municipality: "Los Baños"},
		types.CropContext{CropIDs: []string{"rice"}},
		farmTasks,
	)
}

func TestGenerate_MissingDataReturnsEmpty(t *testing.T) {
	engine := newTestEngine()
	loc := types.LocationContext{Municipality: "Los Baños"}

	assert.Empty(t, engine.Generate(nil, loc, types.CropContext{}, nil))

	noCurrent := snapshotWith(func(s *types.WeatherSnapshot) { s.Current = nil })
	assert.Empty(t, engine.Generate(noCurrent, loc, types.CropContext{}, nil))

	noDaily := snapshotWith(func(s *types.WeatherSnapshot) { s.Daily = nil })
	assert.Empty(t, engine.Generate(noDaily, loc, types.CropContext{}, nil))
}

func TestGenerate_CalmWeatherYieldsNoSuggestions(t *testing.T) {
	assert.Empty(t, generate(t, snapshotWith(nil)))
}

func TestGenerate_PriorityOrdering(t *testing.T) {
	// Heat stress (low) plus typhoon (high) plus strong wind (medium):
	// output must never place a lower priority before a higher one.
	snap := snapshotWith(func(s *types.WeatherSnapshot) {
		s.TyphoonAlert = true
		s.Current.WindSpeedKmh = 35
		s.Daily[0].HighTempC = 36
		s.Daily[0].PrecipitationProb = f(5)
	})

	out := generate(t, snap)
	require.NotEmpty(t, out)
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t,
			out[i-1].Priority.Weight(), out[i].Priority.Weight(),
			"suggestion %d (%s) outranked by %d (%s)", i-1, out[i-1].ID, i, out[i].ID,
		)
	}
}

func TestGenerate_ExtremeCombinationConsolidates(t *testing.T) {
	// Typhoon + 90% rain + 60 km/h wind collapse into one warning.
	snap := snapshotWith(func(s *types.WeatherSnapshot) {
		s.TyphoonAlert = true
		s.Current.WindSpeedKmh = 60
		s.Daily[0].PrecipitationProb = f(90)
	})

	out := generate(t, snap)
	require.Len(t, out, 1)
	assert.Equal(t, "multiple-risks:2026-08-30", out[0].ID)
	assert.Equal(t, types.PriorityHigh, out[0].Priority)
	assert.Equal(t, types.SuggestionRiskWarning, out[0].Type)
	assert.False(t, out[0].Dismissible)
}

func TestGenerate_TyphoonAloneIsNotConsolidated(t *testing.T) {
	snap := snapshotWith(func(s *types.WeatherSnapshot) {
		s.TyphoonAlert = true
	})

	out := generate(t, snap)
	require.Len(t, out, 1)
	assert.Equal(t, "typhoon-alert:2026-08-30", out[0].ID)
	assert.False(t, out[0].Dismissible)
}

func TestGenerate_DeterministicIDs(t *testing.T) {
	snap := snapshotWith(func(s *types.WeatherSnapshot) {
		s.Daily[0].PrecipitationProb = f(75)
	})

	first := generate(t, snap)
	second := generate(t, snap)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestGenerate_ValidUntilCappedAtDayEnd(t *testing.T) {
	// now+24h crosses into tomorrow, so today's advisory expires at local
	// midnight instead.
	snap := snapshotWith(func(s *types.WeatherSnapshot) {
		s.Daily[0].PrecipitationProb = f(80)
	})

	out := generate(t, snap)
	require.Len(t, out, 1)
	dayEnd := time.Date(2026, 8, 31, 0, 0, 0, 0, manila)
	assert.True(t, out[0].ValidUntil.Equal(dayEnd),
		"expected expiry %s, got %s", dayEnd, out[0].ValidUntil)
}

func TestFilterDismissed(t *testing.T) {
	now := testNow
	suggestions := []types.Suggestion{
		{ID: "a", Dismissible: true, ValidUntil: now.Add(time.Hour)},
		{ID: "b", Dismissible: true, ValidUntil: now.Add(time.Hour)},
		{ID: "c", Dismissible: false, ValidUntil: now.Add(time.Hour)},
		{ID: "d", Dismissible: true, ValidUntil: now.Add(-time.Hour)},
	}
	dismissed := map[string]bool{"b": true, "c": true}

	out := FilterDismissed(suggestions, dismissed, now)

	ids := make([]string, 0, len(out))
	for _, s := range out {
		ids = append(ids, s.ID)
	}
	// "b" dismissed, "c" survives dismissal (non-dismissible), "d" expired.
	assert.Equal(t, []string{"a", "c"}, ids)
}

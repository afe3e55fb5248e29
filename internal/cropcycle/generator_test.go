package cropcycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwatch/internal/types"
)

func TestDayInCycle(t *testing.T) {
	tests := []struct {
		name     string
		planting types.DateKey
		now      types.DateKey
		want     int
	}{
		{"planting day is day one", "2026-08-30", "2026-08-30", 1},
		{"day after planting", "2026-08-30", "2026-08-31", 2},
		{"ten days in", "2026-08-20", "2026-08-30", 11},
		{"before planting clamps to one", "2026-09-05", "2026-08-30", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayInCycle(tt.planting, tt.now))
		})
	}
}

func TestGenerate_PlantingDay(t *testing.T) {
	// Rice planted today with a 7-day look-ahead: both day-1 tasks dated
	// today, the day-7 fertilizer dose, and nothing past day 8.
	tasks := Generate("rice", "2026-08-30", "2026-08-30", 7)
	require.Len(t, tasks, 3)

	assert.Equal(t, "rice-d001-land_preparation", tasks[0].ID)
	assert.Equal(t, "rice-d001-planting", tasks[1].ID)
	assert.Equal(t, "rice-d007-fertilization", tasks[2].ID)

	assert.Equal(t, types.DateKey("2026-08-30"), tasks[0].Date)
	assert.Equal(t, types.DateKey("2026-09-05"), tasks[2].Date)

	for _, task := range tasks {
		assert.Equal(t, types.TaskPending, task.Status)
		assert.Equal(t, "Rice (Palay)", task.CropName)
	}
}

func TestGenerate_MidCycleWindow(t *testing.T) {
	// Day 11 of the rice cycle: the window [11, 18] catches the day-14
	// weeding and the day-15 irrigation occurrence, sorted by date.
	tasks := Generate("rice", "2026-08-20", "2026-08-30", 7)
	require.Len(t, tasks, 2)
	assert.Equal(t, "rice-d014-weeding", tasks[0].ID)
	assert.Equal(t, "rice-d015-irrigation", tasks[1].ID)
	assert.True(t, tasks[0].Date.Before(tasks[1].Date))
}

func TestGenerate_WindowCappedAtDuration(t *testing.T) {
	// Day 105 of a 110-day cycle: only the day-110 harvest remains.
	tasks := Generate("rice", "2026-05-18", "2026-08-30", 7)
	require.Len(t, tasks, 1)
	assert.Equal(t, "rice-d110-harvest", tasks[0].ID)

	// Past the cycle end nothing generates.
	assert.Empty(t, Generate("rice", "2026-05-01", "2026-08-30", 7))
}

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate("tomato", "2026-08-15", "2026-08-30", 7)
	second := Generate("tomato", "2026-08-15", "2026-08-30", 7)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestGenerate_InvalidInput(t *testing.T) {
	assert.Empty(t, Generate("durian", "2026-08-30", "2026-08-30", 7))
	assert.Empty(t, Generate("rice", "not-a-date", "2026-08-30", 7))
	assert.Empty(t, Generate("rice", "2026-08-30", "not-a-date", 7))
	assert.Empty(t, Generate("rice", "2026-08-30", "2026-08-30", -1))
}

func TestGenerate_RecurringOccurrences(t *testing.T) {
	// Eggplant irrigation repeats every 4 days from day 4; a zero-day
	// look-ahead window on day 8 catches exactly that occurrence.
	tasks := Generate("eggplant", "2026-08-23", "2026-08-30", 0)
	require.Len(t, tasks, 1)
	assert.Equal(t, "eggplant-d008-irrigation", tasks[0].ID)
}

func TestGenerateAll_SortsByCrop(t *testing.T) {
	plantings := map[string]types.DateKey{
		"tomato": "2026-08-30",
		"corn":   "2026-08-30",
	}
	tasks := GenerateAll(plantings, "2026-08-30", 7)
	require.NotEmpty(t, tasks)
	assert.Equal(t, "corn", tasks[0].CropID)
	assert.Equal(t, "tomato", tasks[len(tasks)-1].CropID)
}

func TestApplyStatuses(t *testing.T) {
	tasks := Generate("rice", "2026-08-30", "2026-08-30", 7)
	require.Len(t, tasks, 3)

	ApplyStatuses(tasks, map[string]types.TaskStatus{
		"rice-d001-planting":        types.TaskCompleted,
		"rice-d007-fertilization":   "exploded", // invalid, ignored
		"rice-d099-never-generated": types.TaskSkipped,
	})

	assert.Equal(t, types.TaskPending, tasks[0].Status)
	assert.Equal(t, types.TaskCompleted, tasks[1].Status)
	assert.Equal(t, types.TaskPending, tasks[2].Status)
}

func TestLookupAndCropIDs(t *testing.T) {
	cfg, ok := Lookup("rice")
	require.True(t, ok)
	assert.Equal(t, 110, cfg.DurationDays)

	_, ok = Lookup("durian")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"rice", "corn", "tomato", "eggplant"}, CropIDs())
}

package cropcycle

import (
	"fmt"
	"sort"

	"cropwatch/internal/types"
)

// DayInCycle returns the 1-based cycle day for now given the planting date.
// Planting day is day 1; dates before planting clamp to 1, never 0 or
// negative.
func DayInCycle(plantingDate, now types.DateKey) int {
	day := types.DaysBetween(plantingDate, now) + 1
	if day < 1 {
		return 1
	}
	return day
}

// Generate projects the crop's template entries that fall inside the
// look-ahead window into dated DailyTask records.
//
// The window is [dayInCycle(now), min(dayInCycle(now)+lookAheadDays,
// duration)]. Each surviving entry is dated plantingDate+(day-1); entries
// whose date is strictly before now's date are skipped (tasks never
// regenerate into the past, today is allowed). Output is sorted by date
// ascending with ties keeping template declaration order.
//
// Unknown crop IDs return an empty list. The generator is stateless: calling
// it twice with identical inputs yields identical tasks, and task IDs are
// deterministic composites so persisted statuses merge back cleanly.
func Generate(cropID string, plantingDate, now types.DateKey, lookAheadDays int) []types.DailyTask {
	cfg, ok := Lookup(cropID)
	if !ok {
		return nil
	}
	if !plantingDate.Valid() || !now.Valid() || lookAheadDays < 0 {
		return nil
	}

	startDay := DayInCycle(plantingDate, now)
	maxDay := startDay + lookAheadDays
	if maxDay > cfg.DurationDays {
		maxDay = cfg.DurationDays
	}

	var tasks []types.DailyTask
	for _, tpl := range cfg.Templates {
		for _, day := range occurrences(tpl, cfg.DurationDays) {
			if day < startDay || day > maxDay {
				continue
			}
			date := plantingDate.AddDays(day - 1)
			if date.Before(now) {
				continue
			}
			tasks = append(tasks, types.DailyTask{
				ID:               taskID(cfg.ID, day, tpl.Type),
				Date:             date,
				CropID:           cfg.ID,
				CropName:         cfg.Name,
				Stage:            tpl.Stage,
				DayInCycle:       day,
				Type:             tpl.Type,
				Title:            tpl.Title,
				Description:      tpl.Description,
				WeatherSensitive: tpl.WeatherSensitive,
				Status:           types.TaskPending,
				Color:            tpl.Color,
			})
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Date.Before(tasks[j].Date)
	})
	return tasks
}

// GenerateAll runs Generate for each selected crop and concatenates the
// results, preserving per-crop ordering.
func GenerateAll(plantings map[string]types.DateKey, now types.DateKey, lookAheadDays int) []types.DailyTask {
	ids := make([]string, 0, len(plantings))
	for id := range plantings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var all []types.DailyTask
	for _, id := range ids {
		all = append(all, Generate(id, plantings[id], now, lookAheadDays)...)
	}
	return all
}

// ApplyStatuses merges persisted task statuses back into freshly generated
// tasks, keyed by task ID. Unknown or invalid statuses leave the task
// pending.
func ApplyStatuses(tasks []types.DailyTask, statuses map[string]types.TaskStatus) {
	if len(statuses) == 0 {
		return
	}
	for i := range tasks {
		if st, ok := statuses[tasks[i].ID]; ok && st.Valid() {
			tasks[i].Status = st
		}
	}
}

// occurrences expands a template entry into the cycle days it occurs on.
// Non-recurring entries occur once; recurring entries repeat every
// RepeatEveryDays up to RepeatUntilDay, bounded by the crop's duration.
func occurrences(tpl types.TaskTemplate, durationDays int) []int {
	if tpl.RepeatEveryDays <= 0 {
		return []int{tpl.Day}
	}
	until := tpl.RepeatUntilDay
	if until <= 0 || until > durationDays {
		until = durationDays
	}
	var days []int
	for day := tpl.Day; day <= until; day += tpl.RepeatEveryDays {
		days = append(days, day)
	}
	return days
}

// taskID builds the stable composite identifier for a generated task.
// Regenerating the same (crop, cycle day, task type) always yields the same
// ID, which is what keeps status persistence working across runs.
func taskID(cropID string, day int, taskType types.TaskType) string {
	return fmt.Sprintf("%s-d%03d-%s", cropID, day, taskType)
}

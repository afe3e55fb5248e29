package types

import "time"

// LocationContext identifies where the farm is. Municipality is required;
// barangay is the optional finer unit. Rules use it only to localize
// advisory text, never numerically.
type LocationContext struct {
	Municipality string `json:"municipality" validate:"required"`
	Barangay     string `json:"barangay,omitempty"`
}

// Label returns the human-readable place name for advisory messages.
func (l LocationContext) Label() string {
	if l.Barangay != "" {
		return l.Barangay + ", " + l.Municipality
	}
	return l.Municipality
}

// CropContext is the set of crop IDs the farmer selected. Order carries no
// meaning; duplicates are ignored by consumers.
type CropContext struct {
	CropIDs []string `json:"crop_ids"`
}

// Has reports whether the given crop ID is selected.
func (c CropContext) Has(cropID string) bool {
	for _, id := range c.CropIDs {
		if id == cropID {
			return true
		}
	}
	return false
}

// FarmTaskRef is a lightweight reference to a manually scheduled farm task,
// distinct from generated DailyTasks. The schedule-conflict rule matches its
// date against the forecast.
type FarmTaskRef struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Date     DateKey `json:"date"`
	TaskType string  `json:"task_type,omitempty"`
}

// Suggestion is a prioritized, human-readable advisory derived from weather
// and context rules. Suggestions are recomputed fresh on every engine run;
// the ID is deterministic (rule name plus discriminating key) so the same
// condition reproduces the same ID across runs, which is what makes
// dismissal tracking work.
type Suggestion struct {
	ID                string         `json:"id"`
	Type              SuggestionType `json:"type"`
	Priority          Priority       `json:"priority"`
	Title             string         `json:"title"`
	Message           string         `json:"message"`
	Reason            string         `json:"reason"`
	RecommendedAction string         `json:"recommended_action"`
	ValidUntil        time.Time      `json:"valid_until"`

	// Dismissible is false for life-safety warnings (typhoon, combined
	// extremes) which must stay visible until they expire.
	Dismissible bool `json:"dismissible"`
}

// Expired reports whether the suggestion's validity window has passed.
func (s Suggestion) Expired(now time.Time) bool {
	return now.After(s.ValidUntil)
}

// TaskTemplate is one entry in a crop's cycle schedule. Day is the offset
// from planting with planting day as day 1. A non-zero RepeatEveryDays
// expands the template into recurring tasks up to RepeatUntilDay (inclusive).
type TaskTemplate struct {
	Day              int         `json:"day"`
	Type             TaskType    `json:"type"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Stage            GrowthStage `json:"stage"`
	WeatherSensitive bool        `json:"weather_sensitive"`
	Color            string      `json:"color"`
	RepeatEveryDays  int         `json:"repeat_every_days,omitempty"`
	RepeatUntilDay   int         `json:"repeat_until_day,omitempty"`
}

// CropConfig is the static template describing a crop's task schedule over
// its growth duration. Configs are immutable registry entries, not
// user-editable data.
type CropConfig struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	DurationDays int            `json:"duration_days"`
	Templates    []TaskTemplate `json:"templates"`
}

// DailyTask is a dated, crop-specific farming activity materialized from a
// CropConfig template. Tasks are recomputed from the planting date on every
// generator call; only Status survives across runs, merged back in by task
// ID. The ID is therefore a deterministic composite of crop, cycle day, and
// task type -- never a wall-clock value.
type DailyTask struct {
	ID               string      `json:"id"`
	Date             DateKey     `json:"date"`
	CropID           string      `json:"crop_id"`
	CropName         string      `json:"crop_name"`
	Stage            GrowthStage `json:"stage"`
	DayInCycle       int         `json:"day_in_cycle"`
	Type             TaskType    `json:"type"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	WeatherSensitive bool        `json:"weather_sensitive"`
	Status           TaskStatus  `json:"status"`
	Color            string      `json:"color"`
	SkipReason       string      `json:"skip_reason,omitempty"`
	SuggestionID     string      `json:"suggestion_id,omitempty"`
}

// ScheduledNotification is the bookkeeping record for a device notification
// that has been handed to the scheduling capability. Records persist until
// explicitly removed or pruned once ScheduledFor passes.
type ScheduledNotification struct {
	ID           string           `json:"id"`
	Kind         NotificationKind `json:"kind"`
	EntityID     string           `json:"entity_id"`
	ScheduledFor time.Time        `json:"scheduled_for"`
	Title        string           `json:"title"`
	Body         string           `json:"body"`
}

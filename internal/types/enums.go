package types

// SuggestionType categorizes an advisory by intent.
type SuggestionType string

const (
	SuggestionRiskWarning        SuggestionType = "risk_warning"
	SuggestionFarmingAdvice      SuggestionType = "farming_advice"
	SuggestionScheduleSuggestion SuggestionType = "schedule_suggestion"
)

// Priority determines advisory ordering and notification worthiness.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight returns the sort weight for a priority. Lower sorts first.
// Unknown priorities sort last so malformed data never outranks real advisories.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// TaskStatus represents the lifecycle state of a daily farm task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskSkipped   TaskStatus = "skipped"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskCompleted, TaskSkipped:
		return true
	}
	return false
}

// TaskType identifies the kind of farming activity a task represents.
type TaskType string

const (
	TaskLandPreparation TaskType = "land_preparation"
	TaskPlanting        TaskType = "planting"
	TaskFertilization   TaskType = "fertilization"
	TaskIrrigation      TaskType = "irrigation"
	TaskPestControl     TaskType = "pest_control"
	TaskWeeding         TaskType = "weeding"
	TaskMonitoring      TaskType = "monitoring"
	TaskHarvest         TaskType = "harvest"
)

// GrowthStage identifies the phase of a crop cycle a task belongs to.
type GrowthStage string

const (
	StageLandPreparation GrowthStage = "land_preparation"
	StageEarlyGrowth     GrowthStage = "early_growth"
	StageVegetative      GrowthStage = "vegetative"
	StageReproductive    GrowthStage = "reproductive"
	StageMaturity        GrowthStage = "maturity"
	StageHarvest         GrowthStage = "harvest"
)

// NotificationKind distinguishes what a scheduled notification refers to.
type NotificationKind string

const (
	NotificationTask       NotificationKind = "task"
	NotificationSuggestion NotificationKind = "suggestion"
)

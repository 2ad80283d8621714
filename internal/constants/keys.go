package constants

// Persisted key layout. Counter keys are built as "<metric>.<suffix>".
const (
	MetricSteps     = "steps"
	MetricHydration = "hydration"

	SuffixValue         = "value"
	SuffixLastUpdateDay = "lastUpdateDay"
	SuffixGoal          = "goal"
	SuffixHistory       = "history"

	KeyHabits            = "habits"
	KeyMoods             = "moods"
	KeySensorBaseline    = "steps.sensorBaseline"
	KeySensorBaselineDay = "steps.sensorBaselineDay"

	// GoalFlagPrefix is followed by "<metric>.<YYYY-MM-DD>"
	GoalFlagPrefix = "goalAchieved."

	// CorruptSuffix is appended to a collection key to preserve an unreadable payload
	CorruptSuffix = ".corrupt"

	SettingsPrefix = "settings."
)

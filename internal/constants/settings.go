package constants

const (
	// Settings keys (stored under SettingsPrefix)
	SettingTimezone                  = "timezone"
	SettingUserName                  = "userName"
	SettingHydrationReminderEnabled  = "hydrationReminderEnabled"
	SettingHydrationReminderInterval = "hydrationReminderIntervalMin"
	SettingStepsPaused               = "stepsPaused"

	// Default settings values
	DefaultTimezone                  = "Local" // Use system local timezone by default
	DefaultUserName                  = "User"
	DefaultHydrationReminderEnabled  = false
	DefaultHydrationReminderInterval = 60
	DefaultStepsPaused               = false

	// Default goals
	DefaultStepsGoal     = 10000
	DefaultHydrationGoal = 8

	// Step-derived metric factors
	CaloriesPerStep      = 0.04
	StepsPerActiveMinute = 100
	KilometersPerStep    = 0.000762
)

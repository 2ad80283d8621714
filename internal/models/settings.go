package models

// Settings represents application-wide user settings
type Settings struct {
	Timezone                     string `json:"timezone"`                        // IANA timezone name, or "Local" for system timezone
	UserName                     string `json:"user_name"`                       // display name for the dashboard greeting
	HydrationReminderEnabled     bool   `json:"hydration_reminder_enabled"`      // whether hydration reminders are wanted
	HydrationReminderIntervalMin int    `json:"hydration_reminder_interval_min"` // minutes between hydration reminders
	StepsPaused                  bool   `json:"steps_paused"`                    // ignore step sensor readings while true
}

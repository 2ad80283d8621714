package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/aura/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingUserName:
			settings.UserName = value
		case constants.SettingHydrationReminderEnabled:
			settings.HydrationReminderEnabled = value == "true"
		case constants.SettingHydrationReminderInterval:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.HydrationReminderIntervalMin = n
		case constants.SettingStepsPaused:
			settings.StepsPaused = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:                  settings.Timezone,
		constants.SettingUserName:                  settings.UserName,
		constants.SettingHydrationReminderEnabled:  strconv.FormatBool(settings.HydrationReminderEnabled),
		constants.SettingHydrationReminderInterval: strconv.Itoa(settings.HydrationReminderIntervalMin),
		constants.SettingStepsPaused:               strconv.FormatBool(settings.StepsPaused),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.UserName == "" {
		settings.UserName = constants.DefaultUserName
	}
	if settings.HydrationReminderIntervalMin <= 0 {
		settings.HydrationReminderIntervalMin = constants.DefaultHydrationReminderInterval
	}
}

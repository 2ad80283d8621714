package engine

import (
	"fmt"
	"strings"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/logger"
	"github.com/julianstephens/aura/internal/models"
	"github.com/julianstephens/aura/internal/utils"
)

// GetSettings reads the settings.* keys with defaults applied. Unreadable
// values fall back to their defaults.
func (e *Engine) GetSettings() (models.Settings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settingsLocked()
}

func (e *Engine) settingsLocked() (models.Settings, error) {
	keys, err := e.store.Keys(constants.SettingsPrefix)
	if err != nil {
		return models.Settings{}, fmt.Errorf("list settings: %w", err)
	}

	raw := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := e.store.Get(k)
		if err != nil {
			return models.Settings{}, fmt.Errorf("read %s: %w", k, err)
		}
		if ok {
			raw[strings.TrimPrefix(k, constants.SettingsPrefix)] = v
		}
	}

	settings, err := models.MapToSettings(raw)
	if err != nil {
		logger.Warn("Unreadable settings, using defaults for bad values", "error", err)
		delete(raw, constants.SettingHydrationReminderInterval)
		settings, _ = models.MapToSettings(raw)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// SaveSettings validates and stores all settings in one batch.
func (e *Engine) SaveSettings(s models.Settings) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveSettingsLocked(s)
}

func (e *Engine) saveSettingsLocked(s models.Settings) error {
	if s.Timezone != "" && !utils.ValidateTimezone(s.Timezone) {
		return errors.InvalidArgumentf("invalid timezone %q", s.Timezone)
	}
	if s.HydrationReminderIntervalMin <= 0 {
		return errors.InvalidArgumentf("reminder interval must be positive, got %d", s.HydrationReminderIntervalMin)
	}
	models.ApplyDefaultSettings(&s)

	batch := make(map[string]string)
	for k, v := range models.SettingsToMap(s) {
		batch[constants.SettingsPrefix+k] = v
	}
	if err := e.store.SetMany(batch); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// UpdateSettings applies fn to the current settings and saves the result.
// fn runs under the engine lock and must not call back into the engine.
func (e *Engine) UpdateSettings(fn func(*models.Settings)) (models.Settings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.settingsLocked()
	if err != nil {
		return models.Settings{}, err
	}
	fn(&s)
	if err := e.saveSettingsLocked(s); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

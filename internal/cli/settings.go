package cli

import (
	"github.com/julianstephens/aura/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone *string `help:"IANA timezone used to decide when a day starts (\"Local\" for the system zone)."`
	Name     *string `help:"Display name used in greetings."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}

	if c.List || (c.Timezone == nil && c.Name == nil) {
		settings, err := e.GetSettings()
		if err != nil {
			return err
		}
		printSettings(ctx, settings)
		if !c.List {
			ctx.Println(mutedStyle.Render("Use --timezone or --name to change settings."))
		}
		return nil
	}

	return ctx.withLock(func() error {
		_, err := e.UpdateSettings(func(s *models.Settings) {
			if c.Timezone != nil {
				s.Timezone = *c.Timezone
			}
			if c.Name != nil {
				s.UserName = *c.Name
			}
		})
		if err != nil {
			return err
		}
		ctx.Println("Settings updated successfully.")
		return nil
	})
}

func printSettings(ctx *Context, s models.Settings) {
	ctx.Println("Current Settings:")
	ctx.Printf("  Name:                %s\n", s.UserName)
	ctx.Printf("  Timezone:            %s\n", s.Timezone)
	ctx.Printf("  Steps Paused:        %v\n", s.StepsPaused)
	ctx.Println("\nHydration Reminder:")
	ctx.Printf("  Enabled:             %v\n", s.HydrationReminderEnabled)
	ctx.Printf("  Interval:            %d min\n", s.HydrationReminderIntervalMin)
}

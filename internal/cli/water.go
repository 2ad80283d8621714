package cli

import (
	"github.com/julianstephens/aura/internal/engine"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/models"
)

type WaterCmd struct {
	Show     WaterShowCmd     `cmd:"" default:"1" help:"Show today's water intake."`
	Add      WaterAddCmd      `cmd:"" help:"Log glasses of water."`
	Remove   WaterRemoveCmd   `cmd:"" help:"Remove logged glasses."`
	Set      WaterSetCmd      `cmd:"" help:"Set today's glass count."`
	Goal     WaterGoalCmd     `cmd:"" help:"Set the daily hydration goal."`
	Reminder WaterReminderCmd `cmd:"" help:"Configure the hydration reminder."`
	History  WaterHistoryCmd  `cmd:"" help:"Show past daily totals."`
}

type WaterShowCmd struct{}

func (c *WaterShowCmd) Run(ctx *Context) error {
	return showCounter(ctx, engine.Hydration)
}

type WaterAddCmd struct {
	Glasses int `arg:"" optional:"" default:"1" help:"Glasses to add."`
}

func (c *WaterAddCmd) Run(ctx *Context) error {
	if c.Glasses <= 0 {
		return errors.InvalidArgumentf("glasses must be positive, got %d", c.Glasses)
	}
	return addToCounter(ctx, engine.Hydration, c.Glasses)
}

type WaterRemoveCmd struct {
	Glasses int `arg:"" optional:"" default:"1" help:"Glasses to remove."`
}

func (c *WaterRemoveCmd) Run(ctx *Context) error {
	if c.Glasses <= 0 {
		return errors.InvalidArgumentf("glasses must be positive, got %d", c.Glasses)
	}
	return addToCounter(ctx, engine.Hydration, -c.Glasses)
}

type WaterSetCmd struct {
	Glasses int `arg:"" help:"Today's total glasses."`
}

func (c *WaterSetCmd) Run(ctx *Context) error {
	return setCounter(ctx, engine.Hydration, c.Glasses)
}

type WaterGoalCmd struct {
	Goal int `arg:"" help:"Daily goal in glasses."`
}

func (c *WaterGoalCmd) Run(ctx *Context) error {
	return setGoal(ctx, engine.Hydration, c.Goal)
}

type WaterReminderCmd struct {
	Enable   bool `help:"Turn the reminder on." xor:"toggle"`
	Disable  bool `help:"Turn the reminder off." xor:"toggle"`
	Interval *int `help:"Minutes between reminders."`
}

func (c *WaterReminderCmd) Run(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}

	if !c.Enable && !c.Disable && c.Interval == nil {
		s, err := e.GetSettings()
		if err != nil {
			return err
		}
		printReminder(ctx, s)
		return nil
	}

	return ctx.withLock(func() error {
		s, err := e.UpdateSettings(func(s *models.Settings) {
			if c.Enable {
				s.HydrationReminderEnabled = true
			}
			if c.Disable {
				s.HydrationReminderEnabled = false
			}
			if c.Interval != nil {
				s.HydrationReminderIntervalMin = *c.Interval
			}
		})
		if err != nil {
			return err
		}
		printReminder(ctx, s)
		return nil
	})
}

func printReminder(ctx *Context, s models.Settings) {
	if s.HydrationReminderEnabled {
		ctx.Printf("Hydration reminder: on, every %d minutes\n", s.HydrationReminderIntervalMin)
		return
	}
	ctx.Printf("Hydration reminder: off (interval %d minutes)\n", s.HydrationReminderIntervalMin)
}

type WaterHistoryCmd struct{}

func (c *WaterHistoryCmd) Run(ctx *Context) error {
	return showHistory(ctx, engine.Hydration)
}

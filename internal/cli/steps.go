package cli

import (
	"github.com/julianstephens/aura/internal/engine"
	"github.com/julianstephens/aura/internal/models"
)

type StepsCmd struct {
	Show    StepsShowCmd    `cmd:"" default:"1" help:"Show today's steps."`
	Add     StepsAddCmd     `cmd:"" help:"Add steps manually."`
	Set     StepsSetCmd     `cmd:"" help:"Set today's step count."`
	Sensor  StepsSensorCmd  `cmd:"" help:"Record a cumulative step sensor reading."`
	Reset   StepsResetCmd   `cmd:"" help:"Reset today's steps to zero."`
	Goal    StepsGoalCmd    `cmd:"" help:"Set the daily step goal."`
	Pause   StepsPauseCmd   `cmd:"" help:"Ignore sensor readings until resumed."`
	Resume  StepsResumeCmd  `cmd:"" help:"Count sensor readings again."`
	History StepsHistoryCmd `cmd:"" help:"Show past daily totals."`
}

type StepsShowCmd struct{}

func (c *StepsShowCmd) Run(ctx *Context) error {
	if err := showCounter(ctx, engine.Steps); err != nil {
		return err
	}
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	value, err := e.Read(engine.Steps)
	if err != nil {
		return err
	}
	m := engine.DeriveStepMetrics(value)
	ctx.Println(mutedStyle.Render(formatStepMetrics(m)))

	settings, err := e.GetSettings()
	if err != nil {
		return err
	}
	if settings.StepsPaused {
		ctx.Println(warnStyle.Render("Step counting is paused."))
	}
	return nil
}

type StepsAddCmd struct {
	Steps int `arg:"" help:"Number of steps to add (negative to subtract)."`
}

func (c *StepsAddCmd) Run(ctx *Context) error {
	return addToCounter(ctx, engine.Steps, c.Steps)
}

type StepsSetCmd struct {
	Steps int `arg:"" help:"Today's total steps."`
}

func (c *StepsSetCmd) Run(ctx *Context) error {
	return setCounter(ctx, engine.Steps, c.Steps)
}

type StepsSensorCmd struct {
	Total int `arg:"" help:"Cumulative steps reported by the device since boot."`
}

func (c *StepsSensorCmd) Run(ctx *Context) error {
	return ctx.mutate(func(e *engine.Engine) error {
		res, err := e.RecordSensorReading(c.Total)
		if err != nil {
			return err
		}
		ctx.printResult(res)
		return nil
	})
}

type StepsResetCmd struct{}

func (c *StepsResetCmd) Run(ctx *Context) error {
	return ctx.mutate(func(e *engine.Engine) error {
		res, err := e.Reset(engine.Steps)
		if err != nil {
			return err
		}
		ctx.Println("Steps reset for today.")
		ctx.printResult(res)
		return nil
	})
}

type StepsGoalCmd struct {
	Goal int `arg:"" help:"Daily step goal."`
}

func (c *StepsGoalCmd) Run(ctx *Context) error {
	return setGoal(ctx, engine.Steps, c.Goal)
}

type StepsPauseCmd struct{}

func (c *StepsPauseCmd) Run(ctx *Context) error {
	return setStepsPaused(ctx, true)
}

type StepsResumeCmd struct{}

func (c *StepsResumeCmd) Run(ctx *Context) error {
	return setStepsPaused(ctx, false)
}

func setStepsPaused(ctx *Context, paused bool) error {
	return ctx.mutate(func(e *engine.Engine) error {
		if _, err := e.UpdateSettings(func(s *models.Settings) { s.StepsPaused = paused }); err != nil {
			return err
		}
		if paused {
			ctx.Println("Step counting paused.")
		} else {
			ctx.Println("Step counting resumed.")
		}
		return nil
	})
}

type StepsHistoryCmd struct{}

func (c *StepsHistoryCmd) Run(ctx *Context) error {
	return showHistory(ctx, engine.Steps)
}

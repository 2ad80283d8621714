package cli

import (
	"fmt"

	"github.com/julianstephens/aura/internal/engine"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" default:"1" help:"List habits with today's status."`
	Done   HabitDoneCmd   `cmd:"" help:"Mark a habit as done today."`
	Undo   HabitUndoCmd   `cmd:"" help:"Unmark a habit for today."`
	Edit   HabitEditCmd   `cmd:"" help:"Rename or re-describe a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Stats  HabitStatsCmd  `cmd:"" help:"Show completion statistics."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Description string `short:"d" help:"Optional description."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	name := c.Name
	if name == "" {
		var err error
		if name, err = promptText(ctx, "Habit name", "habit name"); err != nil {
			return cancelledIsNil(ctx, err)
		}
	}

	return ctx.mutate(func(e *engine.Engine) error {
		h, warnings, err := e.AddHabit(name, c.Description)
		ctx.printWarnings(warnings)
		if err != nil {
			return err
		}
		ctx.Printf("Added habit: %s\n", h.Name)
		return nil
	})
}

type HabitListCmd struct {
	IDs bool `help:"Show habit ids."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	habits, warnings, err := e.ListHabits()
	if err != nil {
		return err
	}
	ctx.printWarnings(warnings)

	if len(habits) == 0 {
		ctx.Println("No habits yet. Add one with 'aura habit add'.")
		return nil
	}
	for _, h := range habits {
		ctx.Println(formatHabit(h, c.IDs))
	}
	return nil
}

func formatHabit(h engine.HabitStatus, showID bool) string {
	check := mutedStyle.Render("○")
	if h.CompletedToday {
		check = successStyle.Render("✓")
	}
	line := fmt.Sprintf("%s %s", check, h.Name)
	if h.Streak > 0 {
		line += fmt.Sprintf("  🔥 %d", h.Streak)
	}
	if h.StreakAtRisk {
		line += " " + warnStyle.Render("(not yet today)")
	}
	if h.BestRun > 1 {
		line += mutedStyle.Render(fmt.Sprintf("  best %d", h.BestRun))
	}
	if showID {
		line += mutedStyle.Render("  " + h.ID)
	}
	if h.Description != "" {
		line += "\n    " + mutedStyle.Render(h.Description)
	}
	return line
}

type HabitDoneCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	return setHabitDone(ctx, c.Name, true)
}

type HabitUndoCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitUndoCmd) Run(ctx *Context) error {
	return setHabitDone(ctx, c.Name, false)
}

func setHabitDone(ctx *Context, ref string, done bool) error {
	return ctx.mutate(func(e *engine.Engine) error {
		st, warnings, err := e.SetHabitCompleted(ref, done)
		ctx.printWarnings(warnings)
		if err != nil {
			return ctx.notFoundIsNotice(err)
		}
		ctx.Println(formatHabit(st, false))
		return nil
	})
}

type HabitEditCmd struct {
	Ref         string  `arg:"" name:"habit" help:"Habit name or id."`
	Name        *string `help:"New name."`
	Description *string `short:"d" help:"New description (empty to clear)."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if c.Name == nil && c.Description == nil {
		ctx.Println("No changes specified. Use --name or --description.")
		return nil
	}
	return ctx.mutate(func(e *engine.Engine) error {
		h, err := e.EditHabit(c.Ref, c.Name, c.Description)
		if err != nil {
			return ctx.notFoundIsNotice(err)
		}
		ctx.Printf("Updated habit: %s\n", h.Name)
		return nil
	})
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	return ctx.mutate(func(e *engine.Engine) error {
		h, err := e.DeleteHabit(c.Name)
		if err != nil {
			return ctx.notFoundIsNotice(err)
		}
		ctx.Printf("Deleted habit: %s\n", h.Name)
		return nil
	})
}

type HabitStatsCmd struct{}

func (c *HabitStatsCmd) Run(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	stats, err := e.HabitStats()
	if err != nil {
		return err
	}
	ctx.printWarnings(stats.Warnings)

	ctx.Println(titleStyle.Render("Habit stats"))
	ctx.Printf("  Habits:           %d\n", stats.Total)
	ctx.Printf("  Completed today:  %d\n", stats.CompletedToday)
	ctx.Printf("  Completion rate:  %d%%\n", stats.CompletionRate)
	ctx.Printf("  Longest streak:   %d\n", stats.LongestStreak)
	ctx.Println(progressBar(stats.CompletionRate))
	return nil
}

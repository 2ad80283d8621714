package cli

import (
	"fmt"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/engine"
)

// StatusCmd prints today's dashboard
type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	d, err := e.Snapshot()
	if err != nil {
		return err
	}
	ctx.printWarnings(d.Warnings)

	ctx.Println(titleStyle.Render(fmt.Sprintf("Hi %s! Today is %s", d.Settings.UserName,
		d.Day.Midnight(e.Location()).Format("Monday, Jan 2"))))
	ctx.Println()

	ctx.printCounter(engine.Steps, d.Steps.Value, d.Steps.Goal)
	printCelebrated(ctx, d.Steps)
	ctx.Println(mutedStyle.Render(formatStepMetrics(d.StepMetrics)))
	if d.Settings.StepsPaused {
		ctx.Println(warnStyle.Render("Step counting is paused."))
	}
	ctx.Println()

	ctx.printCounter(engine.Hydration, d.Hydration.Value, d.Hydration.Goal)
	printCelebrated(ctx, d.Hydration)
	if d.Settings.HydrationReminderEnabled {
		ctx.Println(mutedStyle.Render(fmt.Sprintf("Reminder every %d minutes", d.Settings.HydrationReminderIntervalMin)))
	}
	ctx.Println()

	ctx.Printf("%s %d / %d done today\n", labelStyle.Render("Habits:"), d.HabitsCompleted, d.HabitsTotal)
	if d.Mood != nil {
		ctx.Printf("%s %s %s %s\n", labelStyle.Render("Mood:"), d.Mood.Mood.Emoji(), d.Mood.Mood,
			mutedStyle.Render(d.Mood.Timestamp.In(e.Location()).Format(constants.DateTimeFormat)))
	} else {
		ctx.Printf("%s %s\n", labelStyle.Render("Mood:"), mutedStyle.Render("not logged yet"))
	}
	return nil
}

func printCelebrated(ctx *Context, v engine.CounterView) {
	if v.Celebrated {
		ctx.Println(successStyle.Render("✓ Goal reached today"))
	}
}

func formatStepMetrics(m engine.StepMetrics) string {
	return fmt.Sprintf("%d kcal · %d active min · %.2f km", m.Calories, m.ActiveMinutes, m.DistanceKm)
}

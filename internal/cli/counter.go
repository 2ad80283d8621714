package cli

import (
	"fmt"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/engine"
)

// display names per metric
var (
	metricTitles = map[engine.Metric]string{engine.Steps: "Steps", engine.Hydration: "Water"}
	metricUnits  = map[engine.Metric]string{engine.Steps: "steps", engine.Hydration: "glasses"}
)

func unitOf(m engine.Metric) string { return metricUnits[m] }

func titleOf(m engine.Metric) string { return metricTitles[m] }

func (c *Context) printCounter(m engine.Metric, value, goal int) {
	view := engine.NewCounterView(value, goal)
	c.Printf("%s %d / %d %s\n", labelStyle.Render(titleOf(m)+":"), view.Value, view.Goal, unitOf(m))
	c.Println(progressBar(view.Percent))
}

func (c *Context) printResult(res engine.CounterResult) {
	c.printWarnings(res.Warnings)
	c.printCounter(res.Metric, res.Value, res.Goal)
	if res.GoalAchievedNow {
		c.Println(celebrateStyle.Render(" 🎉 " + titleOf(res.Metric) + " goal reached! "))
	}
}

func showCounter(ctx *Context, m engine.Metric) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	value, err := e.Read(m)
	if err != nil {
		return err
	}
	goal, err := e.Goal(m)
	if err != nil {
		return err
	}
	ctx.printCounter(m, value, goal)
	return nil
}

func addToCounter(ctx *Context, m engine.Metric, delta int) error {
	return ctx.mutate(func(e *engine.Engine) error {
		res, err := e.Increment(m, delta)
		if err != nil {
			return err
		}
		ctx.printResult(res)
		return nil
	})
}

func setCounter(ctx *Context, m engine.Metric, value int) error {
	return ctx.mutate(func(e *engine.Engine) error {
		res, err := e.Set(m, value)
		if err != nil {
			return err
		}
		ctx.printResult(res)
		return nil
	})
}

func setGoal(ctx *Context, m engine.Metric, goal int) error {
	return ctx.mutate(func(e *engine.Engine) error {
		if err := e.SetGoal(m, goal); err != nil {
			return err
		}
		ctx.Printf("%s goal set to %d %s\n", titleOf(m), goal, unitOf(m))
		return nil
	})
}

func showHistory(ctx *Context, m engine.Metric) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	hist, warnings, err := e.History(m)
	if err != nil {
		return err
	}
	ctx.printWarnings(warnings)
	if len(hist) == 0 {
		ctx.Println("No history yet.")
		return nil
	}
	goal, err := e.Goal(m)
	if err != nil {
		return err
	}
	ctx.Println(titleStyle.Render(titleOf(m) + " history"))
	for i := len(hist) - 1; i >= 0; i-- {
		h := hist[i]
		mark := " "
		if h.Value >= goal {
			mark = successStyle.Render("✓")
		}
		ctx.Printf("  %s  %s %7d %s\n", h.Day.Midnight(e.Location()).Format("Mon Jan 02"), mark, h.Value, unitOf(m))
	}
	ctx.Println(mutedStyle.Render(fmt.Sprintf("Keeping the last %d days.", constants.HistoryLimit)))
	return nil
}

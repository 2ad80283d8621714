package cli

import (
	"strings"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/engine"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/models"
)

type MoodCmd struct {
	Log     MoodLogCmd     `cmd:"" help:"Log how you feel."`
	List    MoodListCmd    `cmd:"" help:"List recent mood entries."`
	Today   MoodTodayCmd   `cmd:"" default:"1" help:"Show today's mood."`
	Trend   MoodTrendCmd   `cmd:"" help:"Show the daily average mood."`
	Delete  MoodDeleteCmd  `cmd:"" help:"Delete a mood entry."`
	Summary MoodSummaryCmd `cmd:"" help:"Print a shareable summary of recent moods."`
}

type MoodLogCmd struct {
	Mood string `arg:"" optional:"" help:"1-5, a mood name (very-sad, sad, neutral, happy, very-happy) or an emoji."`
	Note string `short:"n" help:"Optional note."`
}

func (c *MoodLogCmd) Run(ctx *Context) error {
	var (
		mood models.Mood
		note = c.Note
		err  error
	)
	if c.Mood == "" {
		var prompted string
		mood, prompted, err = promptMood(ctx)
		if err != nil {
			return cancelledIsNil(ctx, err)
		}
		if note == "" {
			note = prompted
		}
	} else if mood, err = models.ParseMood(c.Mood); err != nil {
		return errors.InvalidArgumentf("%v", err)
	}

	return ctx.mutate(func(e *engine.Engine) error {
		entry, warnings, err := e.LogMood(mood, note)
		ctx.printWarnings(warnings)
		if err != nil {
			return err
		}
		ctx.Printf("Logged %s %s\n", entry.Mood.Emoji(), entry.Mood)
		return nil
	})
}

func formatMood(e *engine.Engine, m models.MoodEntry, showID bool) string {
	line := m.Mood.Emoji() + " " + m.Mood.String() + mutedStyle.Render("  "+m.Timestamp.In(e.Location()).Format(constants.DateTimeFormat))
	if showID {
		line += mutedStyle.Render("  " + m.ID)
	}
	if m.Note != "" {
		line += "\n    " + m.Note
	}
	return line
}

type MoodListCmd struct {
	Limit int `short:"l" default:"10" help:"Maximum entries to show (0 for all)."`
}

func (c *MoodListCmd) Run(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	entries, warnings, err := e.ListMoods(c.Limit)
	if err != nil {
		return err
	}
	ctx.printWarnings(warnings)
	if len(entries) == 0 {
		ctx.Println("No moods logged yet.")
		return nil
	}
	for _, m := range entries {
		ctx.Println(formatMood(e, m, true))
	}
	return nil
}

type MoodTodayCmd struct{}

func (c *MoodTodayCmd) Run(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	m, warnings, err := e.TodayMood()
	if err != nil {
		return err
	}
	ctx.printWarnings(warnings)
	if m == nil {
		ctx.Println("No mood logged today. Try 'aura mood log'.")
		return nil
	}
	ctx.Println(formatMood(e, *m, false))
	return nil
}

type MoodTrendCmd struct {
	Days int `default:"7" help:"Number of days to include, today included."`
}

func (c *MoodTrendCmd) Run(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	points, warnings, err := e.MoodTrend(c.Days)
	if err != nil {
		return err
	}
	ctx.printWarnings(warnings)
	if len(points) == 0 {
		ctx.Printf("No moods logged in the last %d days.\n", c.Days)
		return nil
	}
	for _, p := range points {
		avg := int(p.Average + 0.5)
		bar := strings.Repeat("■", avg) + mutedStyle.Render(strings.Repeat("□", int(models.MoodVeryHappy)-avg))
		ctx.Printf("  %s  %s %.1f %s\n", p.Day.Midnight(e.Location()).Format("Mon Jan 02"), bar, p.Average, models.Mood(avg).Emoji())
	}
	return nil
}

type MoodDeleteCmd struct {
	ID string `arg:"" help:"Entry id (see 'aura mood list')."`
}

func (c *MoodDeleteCmd) Run(ctx *Context) error {
	return ctx.mutate(func(e *engine.Engine) error {
		m, err := e.DeleteMood(c.ID)
		if err != nil {
			return ctx.notFoundIsNotice(err)
		}
		ctx.Printf("Deleted %s %s entry\n", m.Mood.Emoji(), m.Mood)
		return nil
	})
}

type MoodSummaryCmd struct{}

func (c *MoodSummaryCmd) Run(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	summary, ok, warnings, err := e.MoodSummary()
	if err != nil {
		return err
	}
	ctx.printWarnings(warnings)
	if !ok {
		ctx.Println("No moods to share yet.")
		return nil
	}
	ctx.Printf("%s", summary)
	return nil
}

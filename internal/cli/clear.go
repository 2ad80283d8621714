package cli

import (
	"github.com/julianstephens/aura/internal/engine"
)

// ClearCmd deletes every tracked value, habit, mood and setting
type ClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if !c.Yes {
		ok, err := confirm(ctx, "Delete all aura data? This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	return ctx.mutate(func(e *engine.Engine) error {
		ctx.PerformAutomaticBackup()
		if err := e.ClearAll(); err != nil {
			return err
		}
		ctx.Println("✓ All data cleared.")
		return nil
	})
}

package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/storage"
	"github.com/julianstephens/aura/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete all existing data before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())
	return nil
}

// reset removes a file store, or empties a database that cannot be deleted
func (c *InitCmd) reset(ctx *Context) error {
	switch ctx.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		} else if err != nil {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
		// Close first so the file is not held open
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", path)
	default:
		if err := ctx.Store.Load(); err != nil {
			// Nothing to reset yet
			return nil
		}
		if err := ctx.Store.Clear(); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
		ctx.Println("Cleared existing data.")
	}
	return nil
}

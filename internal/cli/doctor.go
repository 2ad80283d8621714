package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/aura/internal/backup"
	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/engine"
	"github.com/julianstephens/aura/internal/storage/sqlite"
)

// goalFlagRetentionDays is how long per-day goal flags are kept
const goalFlagRetentionDays = 30

// schemaReporter is implemented by the SQL stores
type schemaReporter interface {
	SchemaStatus() (current, latest int, err error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	check := func(name string, err error) bool {
		if err != nil {
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			return false
		}
		ctx.Printf("✓ %s: OK\n", name)
		return true
	}

	dbReachable := check("Storage reachable", ctx.Store.Load())

	if dbReachable {
		check("Schema version", checkSchemaVersion(ctx))
	} else {
		ctx.Printf("⊘ Schema version: SKIPPED (storage not reachable)\n")
	}

	// Backups are advisory
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.Printf("⚠ Backups present: WARNING\n")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Printf("✓ Backups present: OK\n")
	}

	if dbReachable {
		check("Data validation", checkData(ctx))
		check("Clock/timezone", checkClockTimezone(ctx))
		check("Maintenance", pruneGoalFlags(ctx))
	} else {
		ctx.Printf("⊘ Data validation: SKIPPED (storage not reachable)\n")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	r, ok := ctx.Store.(schemaReporter)
	if !ok {
		// file and memory stores are unversioned
		return nil
	}
	current, latest, err := r.SchemaStatus()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("backups are only kept for SQLite storage")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

// checkData decodes every collection and looks for duplicate habit ids
func checkData(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	d, err := e.Snapshot()
	if err != nil {
		return err
	}
	if len(d.Warnings) > 0 {
		return fmt.Errorf("unreadable data in %s (raw value kept as %s%s on the next write)",
			d.Warnings[0].Key, d.Warnings[0].Key, constants.CorruptSuffix)
	}

	habits, _, err := e.ListHabits()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(habits))
	for _, h := range habits {
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", h.ID)
		}
		seen[h.ID] = true
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	now := e.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	ctx.Printf("   Today is %s (%s)\n", e.Today(), e.Location())
	return nil
}

func pruneGoalFlags(ctx *Context) error {
	return ctx.mutate(func(e *engine.Engine) error {
		n, err := e.PruneGoalFlags(e.Today().AddDays(-goalFlagRetentionDays))
		if err != nil {
			return err
		}
		if n > 0 {
			ctx.Printf("   Pruned %d old goal flags\n", n)
		}
		return nil
	})
}

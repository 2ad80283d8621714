package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/aura/internal/backup"
	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/engine"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/lockfile"
	"github.com/julianstephens/aura/internal/logger"
	"github.com/julianstephens/aura/internal/storage"
	"github.com/julianstephens/aura/internal/storage/sqlite"
	"github.com/julianstephens/aura/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Timezone overrides the stored timezone setting when set
	Timezone string
	// Interactive enables prompts for missing arguments and confirmations
	Interactive bool
	Out         io.Writer
	// EngineOptions are applied after the resolved location
	EngineOptions []engine.Option

	engine *engine.Engine
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Engine returns the engine over the loaded store, creating it on first use.
func (c *Context) Engine() (*engine.Engine, error) {
	if c.engine != nil {
		return c.engine, nil
	}
	loc, err := c.location()
	if err != nil {
		return nil, err
	}
	opts := append([]engine.Option{engine.WithLocation(loc)}, c.EngineOptions...)
	c.engine = engine.New(c.Store, opts...)
	return c.engine, nil
}

// location resolves the calendar timezone: --timezone, then the stored
// setting, then the system zone.
func (c *Context) location() (*time.Location, error) {
	if c.Timezone != "" {
		return utils.LoadLocation(c.Timezone)
	}
	tz, err := storage.GetString(c.Store, constants.SettingsPrefix+constants.SettingTimezone, constants.DefaultTimezone)
	if err != nil {
		return nil, err
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		logger.Warn("Stored timezone is invalid, using local time", "timezone", tz, "error", err)
		return time.Local, nil
	}
	return loc, nil
}

// lockable reports whether the store is a local file other processes may share
func (c *Context) lockable() bool {
	switch c.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return true
	}
	return false
}

// withLock runs fn while holding the store's lock file, for file-backed stores.
func (c *Context) withLock(fn func() error) error {
	if !c.lockable() {
		return fn()
	}
	lock, err := lockfile.Acquire(c.Store.GetConfigPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release store lock", "error", err)
		}
	}()
	return fn()
}

// mutate runs fn against the engine under the store lock
func (c *Context) mutate(fn func(e *engine.Engine) error) error {
	e, err := c.Engine()
	if err != nil {
		return err
	}
	return c.withLock(func() error { return fn(e) })
}

// PerformAutomaticBackup creates a backup of a SQLite store and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	path, err := mgr.CreateBackup()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Debug("Automatic backup created", "path", path)
}

// printWarnings shows recoverable data problems without failing the command
func (c *Context) printWarnings(warnings []engine.Warning) {
	for _, w := range warnings {
		c.Println(warnStyle.Render("⚠ " + w.String()))
	}
}

// notFoundIsNotice turns errors.ErrNotFound into a printed notice. Anything
// else is returned unchanged.
func (c *Context) notFoundIsNotice(err error) error {
	if errors.Is(err, errors.ErrNotFound) {
		c.Println(mutedStyle.Render("Nothing changed: " + err.Error()))
		return nil
	}
	return err
}

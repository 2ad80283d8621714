package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/aura/internal/cli"
	"github.com/julianstephens/aura/internal/constants"
	auraerrors "github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/keyring"
	"github.com/julianstephens/aura/internal/logger"
	"github.com/julianstephens/aura/internal/storage"
	"github.com/julianstephens/aura/internal/storage/postgres"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite path, .json file, ':memory:' or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use .pgpass, PGPASSWORD or the OS keyring." env:"AURA_CONFIG"`
	Debug    bool   `help:"Enable debug logging to stderr." env:"AURA_DEBUG"`
	Timezone string `help:"Timezone that decides when a day starts (overrides the stored setting)." env:"AURA_TIMEZONE"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize aura storage."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Status   cli.StatusCmd   `cmd:"" default:"1" help:"Show today's dashboard."`
	Steps    cli.StepsCmd    `cmd:"" help:"Track daily steps."`
	Water    cli.WaterCmd    `cmd:"" help:"Track daily hydration."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and streaks."`
	Mood     cli.MoodCmd     `cmd:"" help:"Log and review moods."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Clear    cli.ClearCmd    `cmd:"" help:"Delete all data."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func main() {
	// A missing .env is normal
	if err := godotenv.Load(expandHome(constants.DefaultEnvFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		auraerrors.Fatalf("failed to load %s: %v", constants.DefaultEnvFile, err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily wellness tracker: steps, water, habits and mood"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir := filepath.Dir(expandHome(constants.DefaultConfigPath))
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		auraerrors.Fatalf("failed to initialize logger: %v", err)
	}

	config := resolveConfig()
	if storage.KindOf(config) == storage.KindPostgres {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				auraerrors.Fatalf("PostgreSQL connection strings with embedded credentials are not allowed. Use .pgpass, PGPASSWORD or '%s keyring set'", constants.AppName)
			}
			auraerrors.Fatal(err)
		}
	}

	store := storage.New(config)
	defer store.Close()

	// init creates the store and keyring commands never touch it
	command := ctx.Command()
	if !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			auraerrors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:       store,
		Timezone:    CLI.Timezone,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		Out:         os.Stdout,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		auraerrors.Fatal(err)
	}
}

// resolveConfig picks the store: --config/AURA_CONFIG, then a connection string
// from AURA_DB_CONNECTION or the keyring, then the default SQLite path.
func resolveConfig() string {
	if CLI.Config != "" {
		if storage.KindOf(CLI.Config) == storage.KindPostgres {
			return CLI.Config
		}
		return expandHome(CLI.Config)
	}
	if connStr, source, ok := keyring.ResolveConnectionString(); ok {
		logger.Debug("Using PostgreSQL connection string", "source", source)
		return connStr
	}
	return expandHome(constants.DefaultConfigPath)
}

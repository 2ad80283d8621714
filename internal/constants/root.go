package constants

const (
	AppName            = "aura"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/aura/aura.db"
	DefaultEnvFile     = "~/.config/aura/.env"
	Version            = "v0.3.0"

	// DateFormat is the canonical DateKey representation (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is used when showing mood timestamps
	DateTimeFormat = "Jan 02, 2006 at 03:04 PM"

	// Environment variables
	EnvConnectionString = "AURA_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "aura-"
	BackupFileSuffix = ".db"

	// Lock constants
	LockFileSuffix = ".lock"

	// HistoryLimit caps the number of archived daily totals kept per metric
	HistoryLimit = 90

	// CollectionSchemaVersion is the version stamped on persisted collections
	CollectionSchemaVersion = 1
)

package constants

import "time"

const (
	AppName            = "studylit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studylit/studylit.db"
	Version            = "v0.1.0"

	// EnvConfig and EnvDBConnection are read by the CLI in addition to flags.
	EnvConfig       = "STUDYLIT_CONFIG"
	EnvDBConnection = "STUDYLIT_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studylit-"
	BackupFileSuffix = ".db"

	// Report constants
	ReportFetchTimeout  = 30 * time.Second
	ReportMaxConcurrent = 8

	// Planner constants
	PlanMinBlockMinutes = 15
)

package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/analysis"
	"github.com/julianstephens/studylit/internal/cli/backups"
	"github.com/julianstephens/studylit/internal/cli/courses"
	"github.com/julianstephens/studylit/internal/cli/quests"
	"github.com/julianstephens/studylit/internal/cli/sessions"
	"github.com/julianstephens/studylit/internal/cli/settings"
	"github.com/julianstephens/studylit/internal/cli/system"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/errors"
	"github.com/julianstephens/studylit/internal/keyring"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path, .json file, or PostgreSQL connection string. PostgreSQL passwords must come from the keyring, ${env_db}, or .pgpass." env:"STUDYLIT_CONFIG" default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr." env:"STUDYLIT_DEBUG"`

	Init     system.InitCmd       `cmd:"" help:"Initialize studylit storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd system.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage scoring and planning settings."`

	Course  courses.CourseCmd   `cmd:"" help:"Manage courses."`
	Topic   courses.TopicCmd    `cmd:"" help:"Manage syllabus topics."`
	Session sessions.SessionCmd `cmd:"" help:"Log and list study sessions."`
	Quest   quests.QuestCmd     `cmd:"" help:"Manage quests."`

	Analyze    analysis.AnalyzeCmd    `cmd:"" help:"Analyze subject performance."`
	Priorities analysis.PrioritiesCmd `cmd:"" help:"Rank subjects by study urgency."`
	Summary    analysis.SummaryCmd    `cmd:"" help:"Summarize performance across subjects."`
	Plan       analysis.PlanCmd       `cmd:"" help:"Lay out today's study blocks."`
}

// noPreload lists commands that open storage themselves or do not need it.
var noPreload = []string{"init", "migrate", "doctor", "keyring", "debug db-path"}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Study performance analysis: scores, flags and prioritizes your subjects."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"env_db":         constants.EnvDBConnection,
		},
	)

	store, source, err := openStore()
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	configDir, err := cli.ConfigDir(store)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("Starting", "command", kctx.Command(), "storage", store.GetConfigPath())
	if source != "" {
		logger.Debug("Using PostgreSQL connection string", "source", source)
	}

	if needsPreload(kctx.Command()) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = kctx.Run(&cli.Context{Store: store})
	if err != nil {
		store.Close()
		logger.Close()
		errors.Fatal(err)
	}
}

// openStore uses --config when it was changed from the default. Otherwise a
// connection string from the environment or keyring selects PostgreSQL, and
// the default SQLite path is the fallback.
func openStore() (storage.Provider, keyring.Source, error) {
	if CLI.Config == constants.DefaultConfigPath {
		if connStr, source, err := keyring.ResolveConnectionString(os.Getenv(constants.EnvDBConnection)); err == nil {
			store, err := cli.OpenCredentialStore(connStr)
			return store, source, err
		}
	}
	store, err := cli.OpenStore(CLI.Config)
	return store, "", err
}

func needsPreload(command string) bool {
	for _, prefix := range noPreload {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return false
		}
	}
	return true
}

package system

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/migration"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
	"github.com/julianstephens/studylit/internal/utils"
	"github.com/julianstephens/studylit/internal/validation"
	"github.com/julianstephens/studylit/migrations"
)

type DoctorCmd struct{}

type checkLevel int

const (
	levelFail checkLevel = iota
	levelWarn
)

type check struct {
	name string
	// needsDB checks are skipped when storage is unreachable
	needsDB bool
	level   checkLevel
	run     func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Data validation", needsDB: true, run: checkMalformedData},
	{name: "Data consistency", needsDB: true, level: levelWarn, run: checkDataConsistency},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Backups present", level: levelWarn, run: checkBackupsPresent},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.level == levelWarn:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	// Schema problems are reported by their own check.
	if store, ok := ctx.Store.(*sqlite.Store); ok {
		if err := store.Open(); err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
	} else if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok || store.GetDB() == nil {
		return nil
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return err
	}
	return migration.NewRunner(store.GetDB(), subFS).ValidateVersion()
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if err := validation.ValidateConfig(settings.AnalysisConfig()); err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("unknown timezone %q", settings.Timezone)
	}
	if !utils.ValidateTimeFormat(settings.DayStart) {
		return fmt.Errorf("day start %q is not HH:MM", settings.DayStart)
	}
	if settings.DailyStudyMinutes <= 0 {
		return fmt.Errorf("daily study minutes must be positive, got %d", settings.DailyStudyMinutes)
	}
	return nil
}

func loadValidation(ctx *cli.Context) (validation.ValidationResult, error) {
	bg := context.Background()
	courses, err := ctx.Store.GetAllCourses(bg, false)
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get courses: %w", err)
	}
	sessions, err := ctx.Store.GetAllSessions(bg)
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get sessions: %w", err)
	}
	quests, err := ctx.Store.GetAllQuests(bg)
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get quests: %w", err)
	}
	return validation.New().ValidateData(courses, sessions, quests), nil
}

func checkMalformedData(ctx *cli.Context) error {
	result, err := loadValidation(ctx)
	if err != nil {
		return err
	}
	return result.Err()
}

func checkDataConsistency(ctx *cli.Context) error {
	result, err := loadValidation(ctx)
	if err != nil {
		return err
	}
	var soft validation.ValidationResult
	for _, issue := range result.Issues {
		if issue.Err == nil {
			soft.Issues = append(soft.Issues, issue)
		}
	}
	if soft.HasIssues() {
		return errors.New(soft.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if ctx.Clock != nil {
		now = ctx.Clock()
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found, consider creating one with 'studylit backup create'")
	}
	return nil
}

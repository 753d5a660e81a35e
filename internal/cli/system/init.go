package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing database before initializing."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt for --force."`
	Source string `help:"Database path or PostgreSQL connection string to copy existing data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized studylit storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}

	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return errors.New("--force is only supported for file-based storage")
	}

	dbPath, err := filepath.Abs(ctx.Store.GetConfigPath())
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	ok, err := ctx.Ask(fmt.Sprintf("Delete all data in %s?", dbPath), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("init cancelled")
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	logger.Info("Deleted existing database", "path", dbPath)
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	return CopyStore(context.Background(), source, ctx.Store, ctx.Println)
}

// CopyStore copies settings, courses (including deleted ones), sessions and
// quests from src into dst.
func CopyStore(ctx context.Context, src, dst storage.Provider, progress func(...any)) error {
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}
	progress("  Copied settings")

	courses, err := src.GetAllCourses(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to get courses from source: %w", err)
	}
	for _, course := range courses {
		if err := dst.AddCourse(course); err != nil {
			return fmt.Errorf("failed to add course %s: %w", course.ID, err)
		}
	}
	progress(fmt.Sprintf("  Copied %d courses", len(courses)))

	sessions, err := src.GetAllSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sessions from source: %w", err)
	}
	for _, session := range sessions {
		if err := dst.AddSession(session); err != nil {
			return fmt.Errorf("failed to add session %s: %w", session.ID, err)
		}
	}
	progress(fmt.Sprintf("  Copied %d study sessions", len(sessions)))

	quests, err := src.GetAllQuests(ctx)
	if err != nil {
		return fmt.Errorf("failed to get quests from source: %w", err)
	}
	for _, quest := range quests {
		if err := dst.AddQuest(quest); err != nil {
			return fmt.Errorf("failed to add quest %s: %w", quest.ID, err)
		}
	}
	progress(fmt.Sprintf("  Copied %d quests", len(quests)))

	return nil
}

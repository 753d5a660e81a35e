package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/report"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
	"github.com/julianstephens/studylit/internal/utils"
)

// Context is passed to every command's Run method.
type Context struct {
	Store storage.Provider
	// Out receives command output. Nil means os.Stdout.
	Out io.Writer
	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
	// Confirm asks a yes/no question. Nil means an interactive huh prompt.
	Confirm func(title string) (bool, error)
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() (time.Time, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	clock := c.Clock
	if clock == nil {
		clock = time.Now
	}
	return clock().In(loc), nil
}

// Reports returns a report builder sharing the context's store and clock.
func (c *Context) Reports() *report.Builder {
	b := report.NewBuilder(c.Store)
	if c.Clock != nil {
		b.WithClock(c.Clock)
	}
	return b
}

// Ask runs the confirmation prompt unless skip is set.
func (c *Context) Ask(title string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}
	if c.Confirm != nil {
		return c.Confirm(title)
	}

	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).WithTheme(huh.ThemeBase()).Run()
	if err != nil {
		return false, fmt.Errorf("interactive form error: %w", err)
	}
	return ok, nil
}

// PerformAutomaticBackup snapshots SQLite stores and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func NewID() string {
	return uuid.NewString()
}

// ResolveCourse finds an active course by ID, then by case-insensitive name.
func ResolveCourse(ctx context.Context, store storage.Provider, ref string) (models.Course, error) {
	course, err := store.GetCourse(ctx, ref)
	if err == nil {
		return course, nil
	}

	courses, err := store.GetAllCourses(ctx, false)
	if err != nil {
		return models.Course{}, fmt.Errorf("failed to list courses: %w", err)
	}

	var matches []models.Course
	for _, c := range courses {
		if strings.EqualFold(c.Name, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return models.Course{}, fmt.Errorf("course %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Course{}, fmt.Errorf("course name %q is ambiguous, use the course ID", ref)
	}
}

// ParseDeadline parses a YYYY-MM-DD date as the last second of that day in loc.
func ParseDeadline(value string, loc *time.Location) (time.Time, error) {
	day, err := utils.ParseDateInLocation(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected %s): %w", value, constants.DateFormat, err)
	}
	return day.AddDate(0, 0, 1).Add(-time.Second), nil
}

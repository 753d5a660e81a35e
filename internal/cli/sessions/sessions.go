package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/render"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/validation"
)

const startLayout = "2006-01-02 15:04"

type SessionCmd struct {
	Log  SessionLogCmd  `cmd:"" help:"Log a study session."`
	List SessionListCmd `cmd:"" help:"List study sessions." default:"1"`
}

type SessionLogCmd struct {
	Course  string `arg:"" optional:"" help:"Course ID or name. Omit for general study time."`
	Minutes int    `short:"m" required:"" help:"Duration in minutes."`
	At      string `help:"Start time (YYYY-MM-DD HH:MM). Defaults to now minus the duration."`
	Notes   string `help:"Free-form notes."`
}

func (c *SessionLogCmd) Run(ctx *cli.Context) error {
	if c.Minutes <= 0 {
		return fmt.Errorf("minutes must be positive, got %d", c.Minutes)
	}
	now, err := ctx.Now()
	if err != nil {
		return err
	}

	started := now.Add(-time.Duration(c.Minutes) * time.Minute)
	if c.At != "" {
		started, err = time.ParseInLocation(startLayout, c.At, now.Location())
		if err != nil {
			return fmt.Errorf("invalid start time %q (expected %s): %w", c.At, startLayout, err)
		}
		if started.After(now) {
			return errors.New("cannot log a session that starts in the future")
		}
	}

	session := models.StudySession{
		ID:              cli.NewID(),
		StartedAt:       started,
		DurationMinutes: c.Minutes,
		Notes:           strings.TrimSpace(c.Notes),
	}
	label := "general study"
	if c.Course != "" {
		course, err := cli.ResolveCourse(context.Background(), ctx.Store, c.Course)
		if err != nil {
			return err
		}
		session.CourseID = course.ID
		label = course.Name
	}
	if err := validation.ValidateSession(session); err != nil {
		return err
	}

	if err := ctx.Store.AddSession(session); err != nil {
		return fmt.Errorf("failed to log session: %w", err)
	}
	ctx.Printf("Logged %d minutes of %s at %s\n", c.Minutes, label, started.Format(startLayout))
	return nil
}

type SessionListCmd struct {
	Course string `arg:"" optional:"" help:"Only show sessions of this course."`
	Days   int    `help:"Only show sessions from the last N days (0 for all)." default:"14"`
}

func (c *SessionListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	var (
		sessions []models.StudySession
		err      error
	)
	if c.Course != "" {
		course, rerr := cli.ResolveCourse(bg, ctx.Store, c.Course)
		if rerr != nil {
			return rerr
		}
		sessions, err = ctx.Store.GetSessionsForCourse(bg, course.ID)
	} else {
		sessions, err = ctx.Store.GetAllSessions(bg)
	}
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if c.Days > 0 {
		now, err := ctx.Now()
		if err != nil {
			return err
		}
		cutoff := now.AddDate(0, 0, -c.Days)
		sessions = lo.Filter(sessions, func(s models.StudySession, _ int) bool {
			return !s.StartedAt.Before(cutoff)
		})
	}

	names, err := cli.CourseNames(bg, ctx.Store)
	if err != nil {
		return err
	}
	render.Sessions(ctx.Writer(), sessions, names)
	return nil
}

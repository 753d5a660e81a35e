package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/render"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/utils"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" help:"Show the storage location."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
	DumpCourse   DebugDumpCourseCmd   `cmd:"" help:"Dump a course with its sessions and quests as JSON."`
	DumpSessions DebugDumpSessionsCmd `cmd:"" help:"Dump the study sessions of one day as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return render.JSON(ctx.Writer(), map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return render.JSON(ctx.Writer(), settings)
}

// subjectDump is the raw input the analyzer sees for one course.
type subjectDump struct {
	Course   models.Course         `json:"course"`
	Sessions []models.StudySession `json:"sessions"`
	Quests   []models.Quest        `json:"quests"`
}

type DebugDumpCourseCmd struct {
	ID string `arg:"" help:"ID of the course to dump (deleted courses included)."`
}

func (cmd *DebugDumpCourseCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	courses, err := ctx.Store.GetAllCourses(bg, true)
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}
	course, ok := lo.Find(courses, func(c models.Course) bool { return c.ID == cmd.ID })
	if !ok {
		return fmt.Errorf("course not found: %s", cmd.ID)
	}

	sessions, err := ctx.Store.GetSessionsForCourse(bg, course.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to get sessions: %w", err)
	}
	quests, err := ctx.Store.GetQuestsForCourse(bg, course.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to get quests: %w", err)
	}

	return render.JSON(ctx.Writer(), subjectDump{
		Course:   course,
		Sessions: lo.Ternary(sessions == nil, []models.StudySession{}, sessions),
		Quests:   lo.Ternary(quests == nil, []models.Quest{}, quests),
	})
}

type DebugDumpSessionsCmd struct {
	Date string `arg:"" help:"Day to dump (YYYY-MM-DD or 'today')." default:"today"`
}

func (cmd *DebugDumpSessionsCmd) Run(ctx *cli.Context) error {
	now, err := ctx.Now()
	if err != nil {
		return err
	}

	date := cmd.Date
	if date == "today" {
		date = now.Format(constants.DateFormat)
	}
	day, err := utils.ParseDateInLocation(date, now.Location())
	if err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", cmd.Date)
	}

	sessions, err := ctx.Store.GetAllSessions(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}
	key := utils.DateKey(day, now.Location())
	onDay := lo.Filter(sessions, func(s models.StudySession, _ int) bool {
		return utils.DateKey(s.StartedAt, now.Location()) == key
	})

	return render.JSON(ctx.Writer(), onDay)
}

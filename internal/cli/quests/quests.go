package quests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/render"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/validation"
)

type QuestCmd struct {
	Add      QuestAddCmd      `cmd:"" help:"Add a quest to a course."`
	Start    QuestStartCmd    `cmd:"" help:"Mark a quest in progress."`
	Complete QuestCompleteCmd `cmd:"" help:"Mark a quest completed."`
	Fail     QuestFailCmd     `cmd:"" help:"Mark a quest failed."`
	List     QuestListCmd     `cmd:"" help:"List quests." default:"1"`
}

type QuestAddCmd struct {
	Course string `arg:"" help:"Course ID or name."`
	Title  string `arg:"" help:"Quest title."`
}

func (c *QuestAddCmd) Run(ctx *cli.Context) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return errors.New("quest title cannot be empty")
	}
	course, err := cli.ResolveCourse(context.Background(), ctx.Store, c.Course)
	if err != nil {
		return err
	}

	quest := models.Quest{
		ID:       cli.NewID(),
		CourseID: course.ID,
		Title:    title,
		Status:   models.QuestAvailable,
	}
	if err := validation.ValidateQuest(quest); err != nil {
		return err
	}
	if err := ctx.Store.AddQuest(quest); err != nil {
		return fmt.Errorf("failed to add quest: %w", err)
	}
	ctx.Printf("Added quest %s to %s (%s)\n", quest.Title, course.Name, quest.ID)
	return nil
}

// setStatus moves a quest to status, recording the completion time for
// completed quests and clearing it otherwise.
func setStatus(ctx *cli.Context, id string, status models.QuestStatus) (models.Quest, error) {
	quest, err := ctx.Store.GetQuest(context.Background(), id)
	if err != nil {
		return models.Quest{}, fmt.Errorf("failed to get quest: %w", err)
	}

	quest.Status = status
	quest.CompletedAt = nil
	if status == models.QuestCompleted {
		now, err := ctx.Now()
		if err != nil {
			return models.Quest{}, err
		}
		quest.CompletedAt = &now
	}

	if err := ctx.Store.UpdateQuest(quest); err != nil {
		return models.Quest{}, fmt.Errorf("failed to update quest: %w", err)
	}
	return quest, nil
}

type QuestStartCmd struct {
	ID string `arg:"" help:"Quest ID."`
}

func (c *QuestStartCmd) Run(ctx *cli.Context) error {
	quest, err := setStatus(ctx, c.ID, models.QuestInProgress)
	if err != nil {
		return err
	}
	ctx.Printf("Started quest %s\n", quest.Title)
	return nil
}

type QuestCompleteCmd struct {
	ID string `arg:"" help:"Quest ID."`
}

func (c *QuestCompleteCmd) Run(ctx *cli.Context) error {
	quest, err := setStatus(ctx, c.ID, models.QuestCompleted)
	if err != nil {
		return err
	}
	ctx.Printf("Completed quest %s\n", quest.Title)
	return nil
}

type QuestFailCmd struct {
	ID string `arg:"" help:"Quest ID."`
}

func (c *QuestFailCmd) Run(ctx *cli.Context) error {
	quest, err := setStatus(ctx, c.ID, models.QuestFailed)
	if err != nil {
		return err
	}
	ctx.Printf("Marked quest %s failed\n", quest.Title)
	return nil
}

type QuestListCmd struct {
	Course string `arg:"" optional:"" help:"Only show quests of this course."`
}

func (c *QuestListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	var (
		quests []models.Quest
		err    error
	)
	if c.Course != "" {
		course, rerr := cli.ResolveCourse(bg, ctx.Store, c.Course)
		if rerr != nil {
			return rerr
		}
		quests, err = ctx.Store.GetQuestsForCourse(bg, course.ID)
	} else {
		quests, err = ctx.Store.GetAllQuests(bg)
	}
	if err != nil {
		return fmt.Errorf("failed to list quests: %w", err)
	}

	names, err := cli.CourseNames(bg, ctx.Store)
	if err != nil {
		return err
	}
	render.Quests(ctx.Writer(), quests, names)
	return nil
}

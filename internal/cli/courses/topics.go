package courses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/validation"
)

type TopicCmd struct {
	Add      TopicAddCmd      `cmd:"" help:"Add a topic to a course syllabus."`
	Complete TopicCompleteCmd `cmd:"" help:"Mark a topic completed."`
}

type TopicAddCmd struct {
	Course   string  `arg:"" help:"Course ID or name."`
	Title    string  `arg:"" help:"Topic title."`
	Hours    float64 `help:"Estimated hours of study." default:"1"`
	Priority string  `help:"Priority (low, medium, high)." enum:"low,medium,high" default:"medium"`
	Deadline string  `help:"Deadline date (YYYY-MM-DD)."`
}

func (c *TopicAddCmd) Run(ctx *cli.Context) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return errors.New("topic title cannot be empty")
	}
	course, err := cli.ResolveCourse(context.Background(), ctx.Store, c.Course)
	if err != nil {
		return err
	}

	item := models.SyllabusItem{
		ID:             cli.NewID(),
		CourseID:       course.ID,
		Title:          title,
		EstimatedHours: c.Hours,
		Priority:       models.Priority(c.Priority),
	}
	if c.Deadline != "" {
		now, err := ctx.Now()
		if err != nil {
			return err
		}
		deadline, err := cli.ParseDeadline(c.Deadline, now.Location())
		if err != nil {
			return err
		}
		item.Deadline = &deadline
	}

	course.Syllabus = append(course.Syllabus, item)
	if err := validation.ValidateCourse(course); err != nil {
		return err
	}

	if err := ctx.Store.AddSyllabusItem(item); err != nil {
		return fmt.Errorf("failed to add topic: %w", err)
	}
	ctx.Printf("Added topic %s to %s (%s)\n", item.Title, course.Name, item.ID)
	return nil
}

type TopicCompleteCmd struct {
	ID   string `arg:"" help:"Topic ID."`
	Undo bool   `help:"Mark the topic incomplete again."`
}

func (c *TopicCompleteCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Store.GetSyllabusItem(context.Background(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to get topic: %w", err)
	}

	item.Completed = !c.Undo
	if err := ctx.Store.UpdateSyllabusItem(item); err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}

	if c.Undo {
		ctx.Printf("Reopened topic %s\n", item.Title)
	} else {
		ctx.Printf("Completed topic %s\n", item.Title)
	}
	return nil
}

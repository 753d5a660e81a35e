package courses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/render"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/validation"
)

type CourseCmd struct {
	Add     CourseAddCmd     `cmd:"" help:"Add a course."`
	List    CourseListCmd    `cmd:"" help:"List courses." default:"1"`
	Show    CourseShowCmd    `cmd:"" help:"Show a course and its syllabus."`
	Rename  CourseRenameCmd  `cmd:"" help:"Rename a course."`
	Delete  CourseDeleteCmd  `cmd:"" help:"Delete a course."`
	Restore CourseRestoreCmd `cmd:"" help:"Restore a deleted course."`
}

type CourseAddCmd struct {
	Name string `arg:"" help:"Course name."`
}

func (c *CourseAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("course name cannot be empty")
	}
	now, err := ctx.Now()
	if err != nil {
		return err
	}

	course := models.Course{
		ID:        cli.NewID(),
		Name:      name,
		Syllabus:  []models.SyllabusItem{},
		CreatedAt: now,
	}
	if err := validation.ValidateCourse(course); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.AddCourse(course); err != nil {
		return fmt.Errorf("failed to add course: %w", err)
	}
	ctx.Printf("Added course %s (%s)\n", course.Name, course.ID)
	return nil
}

type CourseListCmd struct {
	All bool `help:"Include deleted courses."`
}

func (c *CourseListCmd) Run(ctx *cli.Context) error {
	courses, err := ctx.Store.GetAllCourses(context.Background(), c.All)
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}
	now, err := ctx.Now()
	if err != nil {
		return err
	}
	render.Courses(ctx.Writer(), courses, now)
	return nil
}

type CourseShowCmd struct {
	Course string `arg:"" help:"Course ID or name."`
}

func (c *CourseShowCmd) Run(ctx *cli.Context) error {
	course, err := cli.ResolveCourse(context.Background(), ctx.Store, c.Course)
	if err != nil {
		return err
	}
	render.Syllabus(ctx.Writer(), course)
	return nil
}

type CourseRenameCmd struct {
	Course string `arg:"" help:"Course ID or name."`
	Name   string `arg:"" help:"New name."`
}

func (c *CourseRenameCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("course name cannot be empty")
	}
	course, err := cli.ResolveCourse(context.Background(), ctx.Store, c.Course)
	if err != nil {
		return err
	}

	old := course.Name
	course.Name = name
	if err := ctx.Store.UpdateCourse(course); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	ctx.Printf("Renamed %s to %s\n", old, name)
	return nil
}

type CourseDeleteCmd struct {
	Course string `arg:"" help:"Course ID or name."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CourseDeleteCmd) Run(ctx *cli.Context) error {
	course, err := cli.ResolveCourse(context.Background(), ctx.Store, c.Course)
	if err != nil {
		return err
	}

	ok, err := ctx.Ask(fmt.Sprintf("Delete course %q? Its sessions and quests are kept.", course.Name), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Delete cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteCourse(course.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted course %s. Restore it with 'studylit course restore %s'.\n", course.Name, course.ID)
	return nil
}

type CourseRestoreCmd struct {
	ID string `arg:"" help:"ID of the deleted course."`
}

func (c *CourseRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreCourse(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotDeleted) {
			return fmt.Errorf("%w: course is active", err)
		}
		return err
	}
	ctx.Printf("Restored course %s\n", c.ID)
	return nil
}

package analysis

import (
	"context"
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/render"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/planner"
)

type AnalyzeCmd struct {
	Course  string `arg:"" optional:"" help:"Course ID or name. Omit to analyze every course."`
	Flagged bool   `help:"Only show subjects that need intervention."`
	JSON    bool   `help:"Print machine-readable JSON."`
}

func (c *AnalyzeCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	if c.Course != "" {
		course, err := cli.ResolveCourse(bg, ctx.Store, c.Course)
		if err != nil {
			return err
		}
		perf, err := ctx.Reports().Analyze(bg, course.ID)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		if c.JSON {
			return render.JSON(ctx.Writer(), perf)
		}
		render.Performance(ctx.Writer(), perf)
		return nil
	}

	rep, err := ctx.Reports().Build(bg)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	perfs := rep.Performances
	if c.Flagged {
		perfs = rep.Flagged()
	}
	if c.JSON {
		return render.JSON(ctx.Writer(), perfs)
	}
	render.Performances(ctx.Writer(), perfs)
	return nil
}

type PrioritiesCmd struct {
	JSON bool `help:"Print machine-readable JSON."`
}

func (c *PrioritiesCmd) Run(ctx *cli.Context) error {
	rep, err := ctx.Reports().Build(context.Background())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if c.JSON {
		return render.JSON(ctx.Writer(), rep.Priorities)
	}
	render.Priorities(ctx.Writer(), rep.Priorities)
	return nil
}

type SummaryCmd struct {
	JSON bool `help:"Print the full report as JSON."`
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	rep, err := ctx.Reports().Build(context.Background())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if c.JSON {
		return render.JSON(ctx.Writer(), rep)
	}
	render.Summary(ctx.Writer(), rep.Summary)
	if flagged := rep.Flagged(); len(flagged) > 0 {
		ctx.Println("\nNeeds intervention:")
		for _, p := range flagged {
			ctx.Printf("  - %s (%d)\n", p.SubjectName, p.OverallScore)
		}
	}
	return nil
}

type PlanCmd struct {
	Minutes int    `help:"Minutes to distribute. Defaults to the daily study minutes setting."`
	Start   string `help:"Start time (HH:MM). Defaults to the day start setting."`
	JSON    bool   `help:"Print machine-readable JSON."`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	rep, err := ctx.Reports().Build(context.Background())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	opts := planner.PlanOptions{
		Date:         rep.GeneratedAt.Format(constants.DateFormat),
		DailyMinutes: settings.DailyStudyMinutes,
		DayStart:     settings.DayStart,
	}
	if c.Minutes != 0 {
		opts.DailyMinutes = c.Minutes
	}
	if c.Start != "" {
		opts.DayStart = c.Start
	}

	plan, err := planner.BuildStudyPlan(rep.Priorities, opts)
	if err != nil {
		return err
	}
	if c.JSON {
		return render.JSON(ctx.Writer(), plan)
	}
	render.Plan(ctx.Writer(), plan)
	return nil
}


// Package report gathers stored study data and runs the performance engine over it.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/studylit/internal/analyzer"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/utils"
)

// Report is one full analysis run over every active course.
type Report struct {
	GeneratedAt  time.Time                   `json:"generated_at"`
	Performances []models.SubjectPerformance `json:"performances"`
	Priorities   []models.StudyPriority      `json:"priorities"`
	Summary      models.PerformanceSummary   `json:"summary"`
}

// Builder fetches subject data from a store and analyzes it.
type Builder struct {
	store storage.Provider
	clock func() time.Time
	limit int
}

func NewBuilder(store storage.Provider) *Builder {
	return &Builder{
		store: store,
		clock: time.Now,
		limit: constants.ReportMaxConcurrent,
	}
}

// WithClock replaces the time source.
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// WithConcurrency caps how many subjects are fetched at once.
func (b *Builder) WithConcurrency(n int) *Builder {
	if n > 0 {
		b.limit = n
	}
	return b
}

// now returns the current time in the configured timezone.
func (b *Builder) now(settings models.Settings) (time.Time, error) {
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return b.clock().In(loc), nil
}

func (b *Builder) fetch(ctx context.Context, course models.Course) (analyzer.SubjectData, error) {
	sessions, err := b.store.GetSessionsForCourse(ctx, course.ID)
	if err != nil {
		return analyzer.SubjectData{}, fmt.Errorf("failed to load sessions for %s: %w", course.Name, err)
	}
	quests, err := b.store.GetQuestsForCourse(ctx, course.ID)
	if err != nil {
		return analyzer.SubjectData{}, fmt.Errorf("failed to load quests for %s: %w", course.Name, err)
	}
	return analyzer.SubjectData{Course: course, Sessions: sessions, Quests: quests}, nil
}

// Build analyzes every active course and ranks them.
func (b *Builder) Build(ctx context.Context) (Report, error) {
	settings, err := b.store.GetSettings()
	if err != nil {
		return Report{}, fmt.Errorf("failed to load settings: %w", err)
	}
	now, err := b.now(settings)
	if err != nil {
		return Report{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ReportFetchTimeout)
	defer cancel()

	courses, err := b.store.GetAllCourses(ctx, false)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load courses: %w", err)
	}
	logger.Debug("Building report", "courses", len(courses), "concurrency", b.limit)

	cfg := settings.AnalysisConfig()
	performances := make([]models.SubjectPerformance, len(courses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.limit)
	for i, course := range courses {
		g.Go(func() error {
			data, err := b.fetch(gctx, course)
			if err != nil {
				return err
			}
			perf, err := analyzer.AnalyzeSubject(data, cfg, now)
			if err != nil {
				return err
			}
			performances[i] = perf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	flagged := lo.CountBy(performances, func(p models.SubjectPerformance) bool { return p.Flagged })
	logger.Info("Report built", "subjects", len(performances), "flagged", flagged)

	return Report{
		GeneratedAt:  now,
		Performances: performances,
		Priorities:   analyzer.PrioritizeSubjects(performances, settings.PriorityTopN),
		Summary:      analyzer.Summarize(performances),
	}, nil
}

// Analyze runs the engine for a single course.
func (b *Builder) Analyze(ctx context.Context, courseID string) (models.SubjectPerformance, error) {
	settings, err := b.store.GetSettings()
	if err != nil {
		return models.SubjectPerformance{}, fmt.Errorf("failed to load settings: %w", err)
	}
	now, err := b.now(settings)
	if err != nil {
		return models.SubjectPerformance{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ReportFetchTimeout)
	defer cancel()

	course, err := b.store.GetCourse(ctx, courseID)
	if err != nil {
		return models.SubjectPerformance{}, err
	}
	data, err := b.fetch(ctx, course)
	if err != nil {
		return models.SubjectPerformance{}, err
	}
	return analyzer.AnalyzeSubject(data, settings.AnalysisConfig(), now)
}

// Flagged returns the performances that need intervention.
func (r Report) Flagged() []models.SubjectPerformance {
	return lo.Filter(r.Performances, func(p models.SubjectPerformance, _ int) bool {
		return p.Flagged
	})
}

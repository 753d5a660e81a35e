package settings

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
	"github.com/julianstephens/studylit/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	WeightStudyTime         *float64 `help:"Weight of the study time score." group:"Weights"`
	WeightQuestCompletion   *float64 `help:"Weight of the quest completion score." group:"Weights"`
	WeightConsistency       *float64 `help:"Weight of the consistency score." group:"Weights"`
	WeightDeadlineAdherence *float64 `help:"Weight of the deadline adherence score." group:"Weights"`

	ThresholdExcellent      *int `help:"Minimum overall score rated excellent." group:"Thresholds"`
	ThresholdGood           *int `help:"Minimum overall score rated good." group:"Thresholds"`
	ThresholdNeedsAttention *int `help:"Minimum overall score rated needs attention." group:"Thresholds"`
	ThresholdCritical       *int `help:"Critical threshold." group:"Thresholds"`

	FlagMinScore       *int `help:"Flag subjects scoring below this." group:"Flagging"`
	FlagMaxIdleDays    *int `help:"Flag subjects not studied for more than this many days." group:"Flagging"`
	FlagMinQuestRate   *int `help:"Flag subjects completing fewer quests than this percentage." group:"Flagging"`
	FlagMinConsistency *int `help:"Flag subjects with a consistency score below this." group:"Flagging"`

	Timezone     *string `help:"IANA timezone name, or Local." group:"Planning"`
	DailyMinutes *int    `help:"Minutes of study the daily plan distributes." group:"Planning"`
	DayStart     *string `help:"Time study blocks start (HH:MM)." group:"Planning"`
	TopN         *int    `help:"Number of subjects that receive study time." group:"Planning"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		c.print(ctx, settings)
		return nil
	}

	updated := c.apply(&settings)
	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := validate(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func set[T any](dst *T, v *T, updated *bool) {
	if v != nil {
		*dst = *v
		*updated = true
	}
}

func (c *SettingsCmd) apply(s *models.Settings) bool {
	updated := false
	set(&s.Weights.StudyTime, c.WeightStudyTime, &updated)
	set(&s.Weights.QuestCompletion, c.WeightQuestCompletion, &updated)
	set(&s.Weights.Consistency, c.WeightConsistency, &updated)
	set(&s.Weights.DeadlineAdherence, c.WeightDeadlineAdherence, &updated)

	set(&s.Thresholds.Excellent, c.ThresholdExcellent, &updated)
	set(&s.Thresholds.Good, c.ThresholdGood, &updated)
	set(&s.Thresholds.NeedsAttention, c.ThresholdNeedsAttention, &updated)
	set(&s.Thresholds.Critical, c.ThresholdCritical, &updated)

	set(&s.Criteria.MinPerformanceScore, c.FlagMinScore, &updated)
	set(&s.Criteria.MaxDaysSinceLastStudy, c.FlagMaxIdleDays, &updated)
	set(&s.Criteria.MinQuestCompletionRate, c.FlagMinQuestRate, &updated)
	set(&s.Criteria.MinConsistencyScore, c.FlagMinConsistency, &updated)

	set(&s.Timezone, c.Timezone, &updated)
	set(&s.DailyStudyMinutes, c.DailyMinutes, &updated)
	set(&s.DayStart, c.DayStart, &updated)
	set(&s.PriorityTopN, c.TopN, &updated)
	return updated
}

func validate(s models.Settings) error {
	if err := validation.ValidateConfig(s.AnalysisConfig()); err != nil {
		return err
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone %q", s.Timezone)
	}
	if !utils.ValidateTimeFormat(s.DayStart) {
		return fmt.Errorf("invalid day start %q (expected HH:MM)", s.DayStart)
	}
	if s.DailyStudyMinutes <= 0 {
		return fmt.Errorf("daily minutes must be positive, got %d", s.DailyStudyMinutes)
	}
	if s.PriorityTopN <= 0 {
		return fmt.Errorf("top-n must be positive, got %d", s.PriorityTopN)
	}
	return nil
}

func (c *SettingsCmd) print(ctx *cli.Context, s models.Settings) {
	ctx.Println("Score Weights:")
	ctx.Printf("  Study Time:            %g\n", s.Weights.StudyTime)
	ctx.Printf("  Quest Completion:      %g\n", s.Weights.QuestCompletion)
	ctx.Printf("  Consistency:           %g\n", s.Weights.Consistency)
	ctx.Printf("  Deadline Adherence:    %g\n", s.Weights.DeadlineAdherence)
	ctx.Println("\nThresholds:")
	ctx.Printf("  Excellent:             %d\n", s.Thresholds.Excellent)
	ctx.Printf("  Good:                  %d\n", s.Thresholds.Good)
	ctx.Printf("  Needs Attention:       %d\n", s.Thresholds.NeedsAttention)
	ctx.Printf("  Critical:              %d\n", s.Thresholds.Critical)
	ctx.Println("\nFlagging:")
	ctx.Printf("  Min Score:             %d\n", s.Criteria.MinPerformanceScore)
	ctx.Printf("  Max Idle Days:         %d\n", s.Criteria.MaxDaysSinceLastStudy)
	ctx.Printf("  Min Quest Rate:        %d%%\n", s.Criteria.MinQuestCompletionRate)
	ctx.Printf("  Min Consistency:       %d\n", s.Criteria.MinConsistencyScore)
	ctx.Println("\nPlanning:")
	ctx.Printf("  Timezone:              %s\n", s.Timezone)
	ctx.Printf("  Daily Minutes:         %d\n", s.DailyStudyMinutes)
	ctx.Printf("  Day Start:             %s\n", s.DayStart)
	ctx.Printf("  Top N:                 %d\n", s.PriorityTopN)
}

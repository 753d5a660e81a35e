package planner

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

const minutesPerDay = 24 * 60

// PlanOptions controls how a day's study budget is laid out.
type PlanOptions struct {
	Date            string // YYYY-MM-DD, informational
	DailyMinutes    int
	DayStart        string // HH:MM
	MinBlockMinutes int    // zero uses the default
}

// Block is one contiguous study period for a subject.
type Block struct {
	SubjectID   string         `json:"subject_id"`
	SubjectName string         `json:"subject_name"`
	Start       string         `json:"start"`
	End         string         `json:"end"` // "24:00" for a block that ends at midnight
	Minutes     int            `json:"minutes"`
	Urgency     models.Urgency `json:"urgency"`
}

type StudyPlan struct {
	Date               string  `json:"date"`
	Blocks             []Block `json:"blocks"`
	UnallocatedMinutes int     `json:"unallocated_minutes"`
}

// BuildStudyPlan turns the time allocation of ranked priorities into back to
// back study blocks starting at the day start. Shares shorter than the minimum
// block are skipped and no block runs past midnight; a block that ends exactly
// at midnight has End "24:00".
func BuildStudyPlan(priorities []models.StudyPriority, opts PlanOptions) (StudyPlan, error) {
	plan := StudyPlan{
		Date:   opts.Date,
		Blocks: []Block{},
	}

	if opts.DailyMinutes <= 0 {
		return plan, fmt.Errorf("daily study minutes must be positive, got %d", opts.DailyMinutes)
	}
	cursor, err := utils.ParseTimeToMinutes(opts.DayStart)
	if err != nil {
		return plan, fmt.Errorf("invalid day start time: %w", err)
	}
	minBlock := opts.MinBlockMinutes
	if minBlock <= 0 {
		minBlock = constants.PlanMinBlockMinutes
	}

	used := 0
	for _, p := range priorities {
		minutes := opts.DailyMinutes * p.TimeAllocationPercent / 100
		minutes = min(minutes, minutesPerDay-cursor)
		if minutes < minBlock {
			continue
		}

		plan.Blocks = append(plan.Blocks, Block{
			SubjectID:   p.SubjectID,
			SubjectName: p.SubjectName,
			Start:       utils.FormatMinutes(cursor),
			End:         utils.FormatMinutes(cursor + minutes),
			Minutes:     minutes,
			Urgency:     p.Urgency,
		})
		cursor += minutes
		used += minutes
	}

	plan.UnallocatedMinutes = opts.DailyMinutes - used
	return plan, nil
}

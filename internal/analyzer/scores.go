package analyzer

import (
	"math"
	"time"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

// roundScore rounds half to even and clamps the result to [MinScore, MaxScore].
func roundScore(x float64) int {
	if math.IsNaN(x) {
		return constants.MinScore
	}
	return clampScore(int(math.RoundToEven(x)))
}

func clampScore(score int) int {
	return max(constants.MinScore, min(constants.MaxScore, score))
}

// ratioDirection says whether logged study time fell short of or exceeded the estimate.
type ratioDirection int

const (
	underTarget ratioDirection = iota
	overTarget
)

func directionOf(ratio float64) ratioDirection {
	if ratio < 1 {
		return underTarget
	}
	return overTarget
}

// ratioSlopes holds the points lost per unit of ratio outside the on-target band.
var ratioSlopes = map[ratioDirection]float64{
	underTarget: constants.StudyTimeUnderSlope,
	overTarget:  constants.StudyTimeOverSlope,
}

// StudyTimeScore compares the minutes logged against the syllabus estimate.
// A course with no estimated effort scores neutral.
func StudyTimeScore(course models.Course, sessions []models.StudySession) int {
	estimated := course.EstimatedMinutes()
	if estimated <= 0 {
		return constants.NeutralScore
	}

	ratio := float64(models.TotalMinutes(sessions)) / estimated
	deviation := math.Abs(ratio - 1)
	if deviation <= constants.StudyTimeOnTargetBand {
		return constants.MaxScore
	}

	slope := ratioSlopes[directionOf(ratio)]
	return roundScore(constants.MaxScore - (deviation-constants.StudyTimeOnTargetBand)*slope)
}

// QuestCompletionRate returns the completed fraction of quests in [0,1].
// It is zero for an empty list.
func QuestCompletionRate(quests []models.Quest) float64 {
	if len(quests) == 0 {
		return 0
	}
	return float64(models.CountCompleted(quests)) / float64(len(quests))
}

// QuestCompletionScore returns the completion rate as a percentage, or neutral
// when the subject has no quests.
func QuestCompletionScore(quests []models.Quest) int {
	if len(quests) == 0 {
		return constants.NeutralScore
	}
	return roundScore(QuestCompletionRate(quests) * 100)
}

type recencyTier struct {
	maxDays    int
	multiplier float64
}

// recencyTiers scale the frequency score by how long ago the last session was.
// Anything past the last tier uses staleMultiplier.
var recencyTiers = []recencyTier{
	{maxDays: 1, multiplier: 1.0},
	{maxDays: 3, multiplier: 0.9},
	{maxDays: 6, multiplier: 0.75},
	{maxDays: 9, multiplier: 0.6},
}

const staleMultiplier = 0.4

func recencyMultiplier(days int) float64 {
	for _, tier := range recencyTiers {
		if days <= tier.maxDays {
			return tier.multiplier
		}
	}
	return staleMultiplier
}

// ConsistencyScore rewards frequent and recent study. Sessions after now are ignored.
func ConsistencyScore(sessions []models.StudySession, now time.Time) int {
	past := sessionsUpTo(sessions, now)
	if len(past) == 0 {
		return constants.MinScore
	}

	perWeek := StudyFrequency(past, now)
	frequencyScore := math.Min(float64(constants.MaxScore), perWeek/constants.TargetSessionsPerWeek*100)

	last := models.LatestSession(past)
	days := max(0, utils.CalendarDaysBetween(*last, now))
	return roundScore(frequencyScore * recencyMultiplier(days))
}

// DeadlineAdherenceScore averages one contribution per syllabus item that has a deadline:
// completed items score full marks, missed deadlines score zero, and upcoming
// deadlines lose points as they draw closer than the comfort horizon.
func DeadlineAdherenceScore(course models.Course, now time.Time) int {
	horizon := time.Duration(constants.DeadlineComfortHorizonDays) * 24 * time.Hour

	total, count := 0.0, 0
	for _, item := range course.Syllabus {
		if item.Deadline == nil {
			continue
		}
		count++
		switch {
		case item.Completed:
			total += constants.MaxScore
		case item.Deadline.Before(now):
			// missed
		default:
			remaining := item.Deadline.Sub(now)
			total += constants.MaxScore * math.Min(1, float64(remaining)/float64(horizon))
		}
	}

	if count == 0 {
		return constants.NeutralScore
	}
	return roundScore(total / float64(count))
}

func sessionsUpTo(sessions []models.StudySession, now time.Time) []models.StudySession {
	past := make([]models.StudySession, 0, len(sessions))
	for _, s := range sessions {
		if !s.StartedAt.After(now) {
			past = append(past, s)
		}
	}
	return past
}

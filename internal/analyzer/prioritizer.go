package analyzer

import (
	"math"
	"slices"
	"strings"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
)

var defaultActions = map[models.PerformanceStatus]string{
	models.StatusExcellent:      "Maintain current routine",
	models.StatusGood:           "Keep up regular review",
	models.StatusNeedsAttention: "Increase study time",
	models.StatusCritical:       "Schedule an intensive catch-up session",
}

var statusUrgency = map[models.PerformanceStatus]models.Urgency{
	models.StatusCritical:       models.UrgencyCritical,
	models.StatusNeedsAttention: models.UrgencyMedium,
	models.StatusGood:           models.UrgencyLow,
	models.StatusExcellent:      models.UrgencyLow,
}

func urgencyFor(p models.SubjectPerformance) models.Urgency {
	if p.Status == models.StatusCritical {
		return models.UrgencyCritical
	}
	if p.Flagged {
		return models.UrgencyHigh
	}
	if u, ok := statusUrgency[p.Status]; ok {
		return u
	}
	return models.UrgencyLow
}

func recommendedAction(p models.SubjectPerformance) string {
	if len(p.Recommendations) > 0 {
		return p.Recommendations[0].Title
	}
	if action, ok := defaultActions[p.Status]; ok {
		return action
	}
	return defaultActions[models.StatusGood]
}

// comparePriority orders flagged subjects first, then lower scores, then nearer
// deadlines (subjects without one last), then by name.
func comparePriority(a, b models.SubjectPerformance) int {
	if a.Flagged != b.Flagged {
		if a.Flagged {
			return -1
		}
		return 1
	}
	if a.OverallScore != b.OverallScore {
		return a.OverallScore - b.OverallScore
	}
	switch {
	case a.NextDeadline != nil && b.NextDeadline == nil:
		return -1
	case a.NextDeadline == nil && b.NextDeadline != nil:
		return 1
	case a.NextDeadline != nil && b.NextDeadline != nil && !a.NextDeadline.Equal(*b.NextDeadline):
		return a.NextDeadline.Compare(*b.NextDeadline)
	}
	if c := strings.Compare(a.SubjectName, b.SubjectName); c != 0 {
		return c
	}
	return strings.Compare(a.SubjectID, b.SubjectID)
}

// PrioritizeSubjects ranks subjects by how urgently they need study time and
// splits the day's time among the top N, inversely to their scores.
// topN <= 0 uses the default. Allocations never sum past 100.
func PrioritizeSubjects(performances []models.SubjectPerformance, topN int) []models.StudyPriority {
	if topN <= 0 {
		topN = constants.DefaultPriorityTopN
	}

	ranked := slices.Clone(performances)
	slices.SortStableFunc(ranked, comparePriority)

	var weightSum float64
	weights := make([]float64, len(ranked))
	for i, p := range ranked {
		if i >= topN {
			break
		}
		weights[i] = 1 / float64(max(p.OverallScore, 1))
		weightSum += weights[i]
	}

	priorities := make([]models.StudyPriority, 0, len(ranked))
	for i, p := range ranked {
		percent := 0
		if weights[i] > 0 {
			percent = int(math.Floor(weights[i] / weightSum * 100))
		}
		priorities = append(priorities, models.StudyPriority{
			SubjectID:             p.SubjectID,
			SubjectName:           p.SubjectName,
			Rank:                  i + 1,
			Urgency:               urgencyFor(p),
			RecommendedAction:     recommendedAction(p),
			TimeAllocationPercent: percent,
			OverallScore:          p.OverallScore,
			Flagged:               p.Flagged,
		})
	}
	return priorities
}

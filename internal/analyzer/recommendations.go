package analyzer

import (
	"fmt"
	"slices"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
)

type recommendationTemplate struct {
	score       func(models.SubScores) int
	weight      func(models.ScoreWeights) float64
	title       string
	description string // formatted with the sub-score
	actionItems []string
	timeframe   string
}

// recommendationOrder is the tie-break order between recommendations of equal priority.
var recommendationOrder = []models.RecommendationType{
	models.RecommendationStudyTime,
	models.RecommendationConsistency,
	models.RecommendationQuestCompletion,
	models.RecommendationDeadline,
}

var recommendationCatalog = map[models.RecommendationType]recommendationTemplate{
	models.RecommendationStudyTime: {
		score:       func(s models.SubScores) int { return s.StudyTime },
		weight:      func(w models.ScoreWeights) float64 { return w.StudyTime },
		title:       "Adjust study time",
		description: "Study time score is %d: time spent is off the syllabus estimate.",
		actionItems: []string{
			"Compare logged minutes with the syllabus estimate each week",
			"Schedule fixed study blocks for this subject",
			"Re-estimate topics that consistently take longer than planned",
		},
		timeframe: "1-2 weeks",
	},
	models.RecommendationConsistency: {
		score:       func(s models.SubScores) int { return s.Consistency },
		weight:      func(w models.ScoreWeights) float64 { return w.Consistency },
		title:       "Build a steadier study routine",
		description: "Consistency score is %d: sessions are infrequent or not recent.",
		actionItems: []string{
			"Study this subject at least five times a week",
			"Keep sessions short enough to fit on busy days",
			"Log a session today to restart the streak",
		},
		timeframe: "2-3 weeks",
	},
	models.RecommendationQuestCompletion: {
		score:       func(s models.SubScores) int { return s.QuestCompletion },
		weight:      func(w models.ScoreWeights) float64 { return w.QuestCompletion },
		title:       "Complete outstanding quests",
		description: "Quest completion score is %d: most quests are still open.",
		actionItems: []string{
			"Pick the smallest open quest and finish it first",
			"Review failed or expired quests for topics to revisit",
		},
		timeframe: "3-5 days",
	},
	models.RecommendationDeadline: {
		score:       func(s models.SubScores) int { return s.DeadlineAdherence },
		weight:      func(w models.ScoreWeights) float64 { return w.DeadlineAdherence },
		title:       "Catch up on deadlines",
		description: "Deadline adherence score is %d: topics are overdue or due soon.",
		actionItems: []string{
			"Finish overdue topics before starting new material",
			"Work on the topic with the nearest deadline next",
		},
		timeframe: "This week",
	},
}

type priorityTier struct {
	maxScore int
	priority models.Priority
}

// priorityEscalation assigns larger deficits a higher priority.
var priorityEscalation = []priorityTier{
	{maxScore: constants.HighPriorityMaxScore, priority: models.PriorityHigh},
	{maxScore: constants.MediumPriorityMaxScore, priority: models.PriorityMedium},
}

var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

func recommendationPriority(score int) models.Priority {
	for _, tier := range priorityEscalation {
		if score <= tier.maxScore {
			return tier.priority
		}
	}
	return models.PriorityLow
}

// GenerateRecommendations returns one recommendation for every sub-score below the
// recommendation threshold, highest priority first. The result is never nil.
// EstimatedImpact is the overall-score gain from lifting the sub-score to the
// threshold under weights.
func GenerateRecommendations(scores models.SubScores, weights models.ScoreWeights) []models.Recommendation {
	recs := []models.Recommendation{}
	for _, typ := range recommendationOrder {
		tmpl := recommendationCatalog[typ]
		score := tmpl.score(scores)
		if score >= constants.RecommendationThreshold {
			continue
		}

		weight := tmpl.weight(weights)
		impact := roundScore(float64(constants.RecommendationThreshold-score) * weight)
		if impact == 0 && weight > 0 {
			impact = 1
		}
		recs = append(recs, models.Recommendation{
			Type:            typ,
			Priority:        recommendationPriority(score),
			Title:           tmpl.title,
			Description:     fmt.Sprintf(tmpl.description, score),
			ActionItems:     slices.Clone(tmpl.actionItems),
			EstimatedImpact: impact,
			TimeToImplement: tmpl.timeframe,
		})
	}

	// recs is already in type order, so a stable sort keeps it as the tie-break.
	slices.SortStableFunc(recs, func(a, b models.Recommendation) int {
		return priorityRank[a.Priority] - priorityRank[b.Priority]
	})
	return recs
}

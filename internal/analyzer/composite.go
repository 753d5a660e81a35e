package analyzer

import "github.com/julianstephens/studylit/internal/models"

// OverallScore combines the four sub-scores with the caller's weights.
// Weights are used as given; they are not renormalized.
func OverallScore(scores models.SubScores, weights models.ScoreWeights) int {
	total := float64(scores.StudyTime)*weights.StudyTime +
		float64(scores.QuestCompletion)*weights.QuestCompletion +
		float64(scores.Consistency)*weights.Consistency +
		float64(scores.DeadlineAdherence)*weights.DeadlineAdherence
	return roundScore(total)
}

type statusTier struct {
	min    int
	status models.PerformanceStatus
	grade  models.Grade
}

// DeterminePerformanceStatus classifies a score by comparing it against the
// thresholds from best to worst. Scores below NeedsAttention are critical.
func DeterminePerformanceStatus(score int, thresholds models.PerformanceThresholds) (models.PerformanceStatus, models.Grade) {
	tiers := []statusTier{
		{min: thresholds.Excellent, status: models.StatusExcellent, grade: models.GradeA},
		{min: thresholds.Good, status: models.StatusGood, grade: models.GradeB},
		{min: thresholds.NeedsAttention, status: models.StatusNeedsAttention, grade: models.GradeC},
	}
	for _, tier := range tiers {
		if score >= tier.min {
			return tier.status, tier.grade
		}
	}
	return models.StatusCritical, models.GradeF
}

// gradePoints maps a letter grade onto the 4-point scale used by the summary GPA.
var gradePoints = map[models.Grade]float64{
	models.GradeA: 4,
	models.GradeB: 3,
	models.GradeC: 2,
	models.GradeF: 0,
}

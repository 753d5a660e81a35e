package models

// ScoreWeights are the per-sub-score weights of the composite score.
// They are expected to sum to 1.0; the analyzer does not renormalize them.
type ScoreWeights struct {
	StudyTime         float64 `json:"study_time"`
	QuestCompletion   float64 `json:"quest_completion"`
	Consistency       float64 `json:"consistency"`
	DeadlineAdherence float64 `json:"deadline_adherence"`
}

// Sum returns the total of all four weights.
func (w ScoreWeights) Sum() float64 {
	return w.StudyTime + w.QuestCompletion + w.Consistency + w.DeadlineAdherence
}

// PerformanceThresholds are the score cutoffs used to classify an overall score.
type PerformanceThresholds struct {
	Excellent      int `json:"excellent"`
	Good           int `json:"good"`
	NeedsAttention int `json:"needs_attention"`
	Critical       int `json:"critical"`
}

// FlaggingCriteria are independent limits; failing any one of them flags a subject.
type FlaggingCriteria struct {
	MinPerformanceScore    int `json:"min_performance_score"`
	MaxDaysSinceLastStudy  int `json:"max_days_since_last_study"`
	MinQuestCompletionRate int `json:"min_quest_completion_rate"` // percent
	MinConsistencyScore    int `json:"min_consistency_score"`
}

// AnalysisConfig bundles everything the analyzer needs besides the subject data.
type AnalysisConfig struct {
	Weights    ScoreWeights          `json:"weights"`
	Thresholds PerformanceThresholds `json:"thresholds"`
	Criteria   FlaggingCriteria      `json:"criteria"`
}

// SubScores holds the four independent sub-scores, each in [0,100].
type SubScores struct {
	StudyTime         int `json:"study_time"`
	QuestCompletion   int `json:"quest_completion"`
	Consistency       int `json:"consistency"`
	DeadlineAdherence int `json:"deadline_adherence"`
}

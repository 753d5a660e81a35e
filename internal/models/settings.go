package models

import "github.com/julianstephens/studylit/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	Weights           ScoreWeights          `json:"weights"`
	Thresholds        PerformanceThresholds `json:"thresholds"`
	Criteria          FlaggingCriteria      `json:"criteria"`
	Timezone          string                `json:"timezone"`            // IANA timezone name, or "Local" for the system timezone
	DailyStudyMinutes int                   `json:"daily_study_minutes"` // minutes the study plan distributes across subjects
	DayStart          string                `json:"day_start"`           // the time study blocks start, e.g. "18:00"
	PriorityTopN      int                   `json:"priority_top_n"`      // subjects that receive a time allocation
}

// AnalysisConfig returns the scoring configuration held by the settings.
func (s Settings) AnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Weights:    s.Weights,
		Thresholds: s.Thresholds,
		Criteria:   s.Criteria,
	}
}

// DefaultSettings returns the settings a freshly initialized store starts with.
func DefaultSettings() Settings {
	return Settings{
		Weights: ScoreWeights{
			StudyTime:         constants.DefaultWeightStudyTime,
			QuestCompletion:   constants.DefaultWeightQuestCompletion,
			Consistency:       constants.DefaultWeightConsistency,
			DeadlineAdherence: constants.DefaultWeightDeadlineAdherence,
		},
		Thresholds: PerformanceThresholds{
			Excellent:      constants.DefaultThresholdExcellent,
			Good:           constants.DefaultThresholdGood,
			NeedsAttention: constants.DefaultThresholdNeedsAttention,
			Critical:       constants.DefaultThresholdCritical,
		},
		Criteria: FlaggingCriteria{
			MinPerformanceScore:    constants.DefaultFlagMinPerformanceScore,
			MaxDaysSinceLastStudy:  constants.DefaultFlagMaxDaysSinceLastStudy,
			MinQuestCompletionRate: constants.DefaultFlagMinQuestCompletionRate,
			MinConsistencyScore:    constants.DefaultFlagMinConsistencyScore,
		},
		Timezone:          constants.DefaultTimezone,
		DailyStudyMinutes: constants.DefaultDailyStudyMinutes,
		DayStart:          constants.DefaultDayStart,
		PriorityTopN:      constants.DefaultPriorityTopN,
	}
}

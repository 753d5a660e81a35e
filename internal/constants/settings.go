package constants

const (
	// Score weight settings
	SettingWeightStudyTime         = "weight_study_time"
	SettingWeightQuestCompletion   = "weight_quest_completion"
	SettingWeightConsistency       = "weight_consistency"
	SettingWeightDeadlineAdherence = "weight_deadline_adherence"

	// Threshold settings
	SettingThresholdExcellent      = "threshold_excellent"
	SettingThresholdGood           = "threshold_good"
	SettingThresholdNeedsAttention = "threshold_needs_attention"
	SettingThresholdCritical       = "threshold_critical"

	// Flagging settings
	SettingFlagMinPerformanceScore    = "flag_min_performance_score"
	SettingFlagMaxDaysSinceLastStudy  = "flag_max_days_since_last_study"
	SettingFlagMinQuestCompletionRate = "flag_min_quest_completion_rate"
	SettingFlagMinConsistencyScore    = "flag_min_consistency_score"

	// Planning settings
	SettingTimezone          = "timezone"
	SettingDailyStudyMinutes = "daily_study_minutes"
	SettingDayStart          = "day_start"
	SettingPriorityTopN      = "priority_top_n"

	// Default Settings Values
	DefaultWeightStudyTime         = 0.3
	DefaultWeightQuestCompletion   = 0.25
	DefaultWeightConsistency       = 0.25
	DefaultWeightDeadlineAdherence = 0.2

	DefaultThresholdExcellent      = 85
	DefaultThresholdGood           = 70
	DefaultThresholdNeedsAttention = 50
	DefaultThresholdCritical       = 30

	DefaultFlagMinPerformanceScore    = 50
	DefaultFlagMaxDaysSinceLastStudy  = 7
	DefaultFlagMinQuestCompletionRate = 30
	DefaultFlagMinConsistencyScore    = 30

	DefaultTimezone          = "Local" // Use system local timezone by default
	DefaultDailyStudyMinutes = 120
	DefaultDayStart          = "18:00"
	DefaultPriorityTopN      = 5
)

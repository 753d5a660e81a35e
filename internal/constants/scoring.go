package constants

const (
	// NeutralScore is returned by a calculator that has no basis for judgment.
	NeutralScore = 50
	MinScore     = 0
	MaxScore     = 100

	// Study time: actual/estimated ratios within this distance of 1.0 are on target.
	StudyTimeOnTargetBand = 0.2
	// Points lost per unit of ratio beyond the on-target band.
	StudyTimeUnderSlope = 125.0
	StudyTimeOverSlope  = 50.0

	// Consistency and frequency look at a trailing window of whole weeks.
	ConsistencyWindowWeeks     = 4
	ConsistencyWindowDays      = ConsistencyWindowWeeks * 7
	TargetSessionsPerWeek      = 5.0
	StreakGraceHours           = 24
	DeadlineComfortHorizonDays = 14

	// Recommendations are generated for sub-scores below this value.
	RecommendationThreshold = 70
	HighPriorityMaxScore    = 40
	MediumPriorityMaxScore  = 55
)

func init() {
	// Runtime validation: default weights must sum to 1.0
	sum := DefaultWeightStudyTime + DefaultWeightQuestCompletion + DefaultWeightConsistency + DefaultWeightDeadlineAdherence
	if sum < 0.999 || sum > 1.001 {
		panic("default score weights must sum to 1.0")
	}
}

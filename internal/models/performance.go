package models

import "time"

type PerformanceStatus string

const (
	StatusExcellent      PerformanceStatus = "excellent"
	StatusGood           PerformanceStatus = "good"
	StatusNeedsAttention PerformanceStatus = "needs_attention"
	StatusCritical       PerformanceStatus = "critical"
)

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeF Grade = "F"
)

type RecommendationType string

const (
	RecommendationStudyTime       RecommendationType = "study_time"
	RecommendationConsistency     RecommendationType = "consistency"
	RecommendationQuestCompletion RecommendationType = "quest_completion"
	RecommendationDeadline        RecommendationType = "deadline"
)

type Recommendation struct {
	Type            RecommendationType `json:"type"`
	Priority        Priority           `json:"priority"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	ActionItems     []string           `json:"action_items"`
	EstimatedImpact int                `json:"estimated_impact"` // expected overall score gain in points
	TimeToImplement string             `json:"time_to_implement"`
}

// FlagReason names a flagging criterion that a subject failed.
type FlagReason string

const (
	FlagLowPerformance FlagReason = "low_performance"
	FlagInactive       FlagReason = "inactive"
	FlagLowQuestRate   FlagReason = "low_quest_completion"
	FlagLowConsistency FlagReason = "low_consistency"
)

// SubjectPerformance is an immutable snapshot of one subject's performance.
type SubjectPerformance struct {
	SubjectID             string            `json:"subject_id"`
	SubjectName           string            `json:"subject_name"`
	OverallScore          int               `json:"overall_score"`
	Status                PerformanceStatus `json:"status"`
	Grade                 Grade             `json:"grade"`
	Scores                SubScores         `json:"scores"`
	Flagged               bool              `json:"flagged"`
	FlagReasons           []FlagReason      `json:"flag_reasons,omitempty"`
	Recommendations       []Recommendation  `json:"recommendations"`
	TotalStudyMinutes     int               `json:"total_study_minutes"`
	EstimatedStudyMinutes int               `json:"estimated_study_minutes"`
	QuestsCompleted       int               `json:"quests_completed"`
	QuestsTotal           int               `json:"quests_total"`
	TopicsCompleted       int               `json:"topics_completed"`
	TopicsTotal           int               `json:"topics_total"`
	LastStudied           *time.Time        `json:"last_studied,omitempty"`
	StudyFrequency        float64           `json:"study_frequency"` // sessions per week
	AverageSessionMinutes float64           `json:"average_session_minutes"`
	ConsistentStudyDays   int               `json:"consistent_study_days"`
	NextDeadline          *time.Time        `json:"next_deadline,omitempty"`
	CalculatedAt          time.Time         `json:"calculated_at"`
}

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

type StudyPriority struct {
	SubjectID             string  `json:"subject_id"`
	SubjectName           string  `json:"subject_name"`
	Rank                  int     `json:"rank"`
	Urgency               Urgency `json:"urgency"`
	RecommendedAction     string  `json:"recommended_action"`
	TimeAllocationPercent int     `json:"time_allocation_percent"`
	OverallScore          int     `json:"overall_score"`
	Flagged               bool    `json:"flagged"`
}

// PerformanceSummary aggregates all of a user's subjects.
type PerformanceSummary struct {
	TotalSubjects       int     `json:"total_subjects"`
	AverageScore        int     `json:"average_score"`
	GPA                 float64 `json:"gpa"`
	NeedsAttentionCount int     `json:"needs_attention_count"`
	FlaggedCount        int     `json:"flagged_count"`
	ConsistencyScore    int     `json:"consistency_score"`
	TotalStudyMinutes   int     `json:"total_study_minutes"`
	StudyStreakDays     int     `json:"study_streak_days"`
}

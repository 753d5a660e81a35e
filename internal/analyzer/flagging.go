package analyzer

import (
	"time"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

type flagInput struct {
	score    int
	sessions []models.StudySession
	quests   []models.Quest
	criteria models.FlaggingCriteria
	now      time.Time
}

type flagCheck struct {
	reason models.FlagReason
	fails  func(in flagInput) bool
}

// flagChecks are independent; a subject is flagged when any one of them fails.
var flagChecks = []flagCheck{
	{
		reason: models.FlagLowPerformance,
		fails: func(in flagInput) bool {
			return in.score < in.criteria.MinPerformanceScore
		},
	},
	{
		reason: models.FlagInactive,
		fails: func(in flagInput) bool {
			last := models.LatestSession(sessionsUpTo(in.sessions, in.now))
			if last == nil {
				return true
			}
			return utils.CalendarDaysBetween(*last, in.now) > in.criteria.MaxDaysSinceLastStudy
		},
	},
	{
		reason: models.FlagLowQuestRate,
		fails: func(in flagInput) bool {
			return QuestCompletionScore(in.quests) < in.criteria.MinQuestCompletionRate
		},
	},
	{
		reason: models.FlagLowConsistency,
		fails: func(in flagInput) bool {
			return ConsistencyScore(in.sessions, in.now) < in.criteria.MinConsistencyScore
		},
	},
}

// ShouldFlagSubject reports whether the subject fails any flagging criterion.
// Having no sessions at or before now counts as inactive.
func ShouldFlagSubject(score int, sessions []models.StudySession, quests []models.Quest, criteria models.FlaggingCriteria, now time.Time) bool {
	in := flagInput{score: score, sessions: sessions, quests: quests, criteria: criteria, now: now}
	for _, check := range flagChecks {
		if check.fails(in) {
			return true
		}
	}
	return false
}

// FlagReasons returns every criterion the subject fails, in a fixed order.
// It is empty exactly when ShouldFlagSubject is false.
func FlagReasons(score int, sessions []models.StudySession, quests []models.Quest, criteria models.FlaggingCriteria, now time.Time) []models.FlagReason {
	in := flagInput{score: score, sessions: sessions, quests: quests, criteria: criteria, now: now}
	reasons := []models.FlagReason{}
	for _, check := range flagChecks {
		if check.fails(in) {
			reasons = append(reasons, check.reason)
		}
	}
	return reasons
}

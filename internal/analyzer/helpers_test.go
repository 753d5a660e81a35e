package analyzer

import (
	"fmt"
	"time"

	"github.com/julianstephens/studylit/internal/models"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

var defaultWeights = models.DefaultSettings().Weights

// sessionsDaysAgo creates one 30-minute session per entry, each the given number
// of days before now.
func sessionsDaysAgo(now time.Time, daysAgo ...int) []models.StudySession {
	sessions := make([]models.StudySession, 0, len(daysAgo))
	for i, d := range daysAgo {
		sessions = append(sessions, models.StudySession{
			ID:              fmt.Sprintf("s%d", i),
			StartedAt:       now.AddDate(0, 0, -d),
			DurationMinutes: 30,
		})
	}
	return sessions
}

// dailyPairs returns two sessions a day for every day in [from, to] days ago.
func dailyPairs(now time.Time, from, to int) []models.StudySession {
	var days []int
	for d := from; d <= to; d++ {
		days = append(days, d, d)
	}
	return sessionsDaysAgo(now, days...)
}

func quests(statuses ...models.QuestStatus) []models.Quest {
	qs := make([]models.Quest, 0, len(statuses))
	for i, s := range statuses {
		qs = append(qs, models.Quest{ID: fmt.Sprintf("q%d", i), Title: fmt.Sprintf("Quest %d", i), Status: s})
	}
	return qs
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func defaultConfig() models.AnalysisConfig {
	return models.DefaultSettings().AnalysisConfig()
}

package analyzer

import (
	"time"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

// StudyFrequency returns the average number of sessions per week over the
// trailing consistency window, counted in calendar days in now's location.
func StudyFrequency(sessions []models.StudySession, now time.Time) float64 {
	count := 0
	for _, s := range sessions {
		if s.StartedAt.After(now) {
			continue
		}
		if utils.CalendarDaysBetween(s.StartedAt, now) < constants.ConsistencyWindowDays {
			count++
		}
	}
	return float64(count) / constants.ConsistencyWindowWeeks
}

// ConsistentStudyDays counts consecutive calendar days with at least one session,
// walking back from today. If nothing was logged today but the latest session is
// less than a day old, the streak is counted from that session's day instead.
func ConsistentStudyDays(sessions []models.StudySession, now time.Time) int {
	loc := now.Location()
	days := make(map[string]bool, len(sessions))
	for _, s := range sessionsUpTo(sessions, now) {
		days[utils.DateKey(s.StartedAt, loc)] = true
	}
	if len(days) == 0 {
		return 0
	}

	day := utils.StartOfDay(now)
	if !days[utils.DateKey(day, loc)] {
		last := models.LatestSession(sessionsUpTo(sessions, now))
		if now.Sub(*last) > constants.StreakGraceHours*time.Hour {
			return 0
		}
		day = utils.StartOfDay(last.In(loc))
	}

	streak := 0
	for days[utils.DateKey(day, loc)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// AverageSessionMinutes returns the mean session length, or zero without sessions.
func AverageSessionMinutes(sessions []models.StudySession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	return float64(models.TotalMinutes(sessions)) / float64(len(sessions))
}

package models

import "time"

type StudySession struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	DurationMinutes int       `json:"duration_minutes"`
	CourseID        string    `json:"course_id,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// TotalMinutes sums the duration of the given sessions.
func TotalMinutes(sessions []StudySession) int {
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total
}

// LatestSession returns the start time of the most recent session, or nil if there are none.
func LatestSession(sessions []StudySession) *time.Time {
	var latest *time.Time
	for _, s := range sessions {
		if latest == nil || s.StartedAt.After(*latest) {
			t := s.StartedAt
			latest = &t
		}
	}
	return latest
}

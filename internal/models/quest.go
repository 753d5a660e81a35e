package models

import "time"

type QuestStatus string

const (
	QuestAvailable  QuestStatus = "available"
	QuestInProgress QuestStatus = "in_progress"
	QuestCompleted  QuestStatus = "completed"
	QuestFailed     QuestStatus = "failed"
	QuestExpired    QuestStatus = "expired"
)

type Quest struct {
	ID          string      `json:"id"`
	CourseID    string      `json:"course_id"`
	Title       string      `json:"title"`
	Status      QuestStatus `json:"status"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// CountCompleted returns how many quests have status completed.
func CountCompleted(quests []Quest) int {
	n := 0
	for _, q := range quests {
		if q.Status == QuestCompleted {
			n++
		}
	}
	return n
}

package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type SyllabusItem struct {
	ID             string     `json:"id"`
	CourseID       string     `json:"course_id"`
	Title          string     `json:"title"`
	EstimatedHours float64    `json:"estimated_hours"`
	Priority       Priority   `json:"priority"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Completed      bool       `json:"completed"`
}

// Course is a subject tracked by the platform.
type Course struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Syllabus  []SyllabusItem `json:"syllabus"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt *string        `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// EstimatedMinutes sums the estimated effort of every syllabus item, completed or not.
func (c Course) EstimatedMinutes() float64 {
	total := 0.0
	for _, item := range c.Syllabus {
		total += item.EstimatedHours * 60
	}
	return total
}

// CompletedTopics returns the number of completed syllabus items.
func (c Course) CompletedTopics() int {
	n := 0
	for _, item := range c.Syllabus {
		if item.Completed {
			n++
		}
	}
	return n
}

// NextDeadline returns the earliest deadline of an incomplete item that is not before now.
func (c Course) NextDeadline(now time.Time) *time.Time {
	var next *time.Time
	for _, item := range c.Syllabus {
		if item.Completed || item.Deadline == nil || item.Deadline.Before(now) {
			continue
		}
		if next == nil || item.Deadline.Before(*next) {
			d := *item.Deadline
			next = &d
		}
	}
	return next
}

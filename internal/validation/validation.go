package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/julianstephens/studylit/internal/models"
)

// ErrMalformedInput matches every *InputError under errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// InputError describes a structurally invalid record handed to the analyzer.
type InputError struct {
	Entity string // course, syllabus_item, session, quest, config
	ID     string
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("invalid %s %q: %s %s", e.Entity, e.ID, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// IssueType represents the kind of data problem found in stored records
type IssueType string

const (
	IssueMalformedRecord    IssueType = "malformed_record"
	IssueDuplicateCourse    IssueType = "duplicate_course_name"
	IssueOrphanedSession    IssueType = "orphaned_session"
	IssueCompletedNoDate    IssueType = "completed_quest_without_date"
	IssueDeadlineBeforeTerm IssueType = "deadline_before_course_created"
)

// Issue represents a detected problem in courses, sessions or quests
type Issue struct {
	Type        IssueType
	Description string
	Items       []string // names or IDs involved
	Err         error    // set for malformed records
}

// ValidationResult contains all detected issues
type ValidationResult struct {
	Issues []Issue
}

// HasIssues returns true if there are any issues
func (vr *ValidationResult) HasIssues() bool {
	return len(vr.Issues) > 0
}

// Err joins the errors of all malformed records, or returns nil if there are none.
func (vr *ValidationResult) Err() error {
	var errs []error
	for _, issue := range vr.Issues {
		if issue.Err != nil {
			errs = append(errs, issue.Err)
		}
	}
	return errors.Join(errs...)
}

// FormatReport returns a human-readable report of all issues
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasIssues() {
		return "No issues detected."
	}

	var b strings.Builder
	b.WriteString("Issues detected:\n")
	for _, issue := range vr.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

func (vr *ValidationResult) addMalformed(err *InputError) {
	vr.Issues = append(vr.Issues, Issue{
		Type:        IssueMalformedRecord,
		Description: err.Error(),
		Items:       []string{err.ID},
		Err:         err,
	})
}

// ValidateCourse checks a course and its syllabus for structurally invalid data.
func ValidateCourse(course models.Course) error {
	var vr ValidationResult
	checkCourse(&vr, course)
	return vr.Err()
}

// ValidateSession checks a single study session.
func ValidateSession(session models.StudySession) error {
	var vr ValidationResult
	checkSession(&vr, session, "")
	return vr.Err()
}

// ValidateQuest checks a single quest.
func ValidateQuest(quest models.Quest) error {
	var vr ValidationResult
	checkQuest(&vr, quest, "")
	return vr.Err()
}

// ValidateSubject checks everything the analyzer reads for one subject.
// Sessions and quests that name a different course are rejected.
func ValidateSubject(course models.Course, sessions []models.StudySession, quests []models.Quest) error {
	var vr ValidationResult
	checkCourse(&vr, course)
	for _, s := range sessions {
		checkSession(&vr, s, course.ID)
	}
	for _, q := range quests {
		checkQuest(&vr, q, course.ID)
	}
	return vr.Err()
}

func checkCourse(vr *ValidationResult, course models.Course) {
	if strings.TrimSpace(course.ID) == "" {
		vr.addMalformed(&InputError{Entity: "course", Field: "id", Reason: "is required"})
	}
	for _, item := range course.Syllabus {
		if strings.TrimSpace(item.ID) == "" {
			vr.addMalformed(&InputError{Entity: "syllabus_item", ID: item.Title, Field: "id", Reason: "is required"})
		}
		if math.IsNaN(item.EstimatedHours) || math.IsInf(item.EstimatedHours, 0) {
			vr.addMalformed(&InputError{Entity: "syllabus_item", ID: item.ID, Field: "estimated_hours", Reason: "must be a finite number"})
		} else if item.EstimatedHours < 0 {
			vr.addMalformed(&InputError{Entity: "syllabus_item", ID: item.ID, Field: "estimated_hours", Reason: fmt.Sprintf("must not be negative (got %g)", item.EstimatedHours)})
		}
		if !item.Priority.Valid() {
			vr.addMalformed(&InputError{Entity: "syllabus_item", ID: item.ID, Field: "priority", Reason: fmt.Sprintf("must be low, medium or high (got %q)", item.Priority)})
		}
	}
}

func checkSession(vr *ValidationResult, s models.StudySession, courseID string) {
	if s.DurationMinutes < 0 {
		vr.addMalformed(&InputError{Entity: "session", ID: s.ID, Field: "duration_minutes", Reason: fmt.Sprintf("must not be negative (got %d)", s.DurationMinutes)})
	}
	if s.StartedAt.IsZero() {
		vr.addMalformed(&InputError{Entity: "session", ID: s.ID, Field: "started_at", Reason: "is required"})
	}
	if courseID != "" && s.CourseID != "" && s.CourseID != courseID {
		vr.addMalformed(&InputError{Entity: "session", ID: s.ID, Field: "course_id", Reason: fmt.Sprintf("belongs to %q, not %q", s.CourseID, courseID)})
	}
}

func checkQuest(vr *ValidationResult, q models.Quest, courseID string) {
	if strings.TrimSpace(string(q.Status)) == "" {
		vr.addMalformed(&InputError{Entity: "quest", ID: q.ID, Field: "status", Reason: "is required"})
	}
	if courseID != "" && q.CourseID != "" && q.CourseID != courseID {
		vr.addMalformed(&InputError{Entity: "quest", ID: q.ID, Field: "course_id", Reason: fmt.Sprintf("belongs to %q, not %q", q.CourseID, courseID)})
	}
}

// weightTolerance absorbs float error in weights entered as decimals.
const weightTolerance = 0.001

// ValidateConfig checks caller-supplied weights, thresholds and criteria.
func ValidateConfig(cfg models.AnalysisConfig) error {
	var vr ValidationResult
	bad := func(field, reason string) {
		vr.addMalformed(&InputError{Entity: "config", Field: field, Reason: reason})
	}

	w := cfg.Weights
	weights := map[string]float64{
		"weights.study_time":         w.StudyTime,
		"weights.quest_completion":   w.QuestCompletion,
		"weights.consistency":        w.Consistency,
		"weights.deadline_adherence": w.DeadlineAdherence,
	}
	for _, name := range []string{"weights.study_time", "weights.quest_completion", "weights.consistency", "weights.deadline_adherence"} {
		if v := weights[name]; v < 0 || math.IsNaN(v) {
			bad(name, fmt.Sprintf("must not be negative (got %g)", v))
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		bad("weights", fmt.Sprintf("must sum to 1.0 (got %g)", sum))
	}

	th := cfg.Thresholds
	if !(th.Excellent > th.Good && th.Good > th.NeedsAttention && th.NeedsAttention > th.Critical) {
		bad("thresholds", fmt.Sprintf("must be strictly descending from excellent to critical (got %d/%d/%d/%d)",
			th.Excellent, th.Good, th.NeedsAttention, th.Critical))
	}
	if th.Excellent > 100 || th.Critical < 0 {
		bad("thresholds", "must lie within 0-100")
	}

	c := cfg.Criteria
	if c.MinPerformanceScore < 0 || c.MinPerformanceScore > 100 {
		bad("criteria.min_performance_score", "must lie within 0-100")
	}
	if c.MaxDaysSinceLastStudy < 0 {
		bad("criteria.max_days_since_last_study", "must not be negative")
	}
	if c.MinQuestCompletionRate < 0 || c.MinQuestCompletionRate > 100 {
		bad("criteria.min_quest_completion_rate", "must lie within 0-100")
	}
	if c.MinConsistencyScore < 0 || c.MinConsistencyScore > 100 {
		bad("criteria.min_consistency_score", "must lie within 0-100")
	}

	return vr.Err()
}

// Validator checks stored study data for problems that are valid per record
// but suspicious across records.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateData checks all courses, sessions and quests together.
func (v *Validator) ValidateData(courses []models.Course, sessions []models.StudySession, quests []models.Quest) ValidationResult {
	result := ValidationResult{Issues: []Issue{}}

	known := make(map[string]bool, len(courses))
	nameCount := make(map[string][]string)
	for _, course := range courses {
		if course.DeletedAt != nil {
			continue
		}
		checkCourse(&result, course)
		known[course.ID] = true
		if course.Name == "" {
			continue
		}
		key := strings.ToLower(course.Name)
		nameCount[key] = append(nameCount[key], course.ID)

		for _, item := range course.Syllabus {
			if item.Deadline != nil && !course.CreatedAt.IsZero() && item.Deadline.Before(course.CreatedAt) {
				result.Issues = append(result.Issues, Issue{
					Type:        IssueDeadlineBeforeTerm,
					Description: fmt.Sprintf("Topic \"%s\" in %s has a deadline before the course was created", item.Title, course.Name),
					Items:       []string{item.ID},
				})
			}
		}
	}

	for _, ids := range nameCount {
		if len(ids) > 1 {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueDuplicateCourse,
				Description: fmt.Sprintf("Duplicate course name (IDs: %v)", ids),
				Items:       ids,
			})
		}
	}

	for _, s := range sessions {
		checkSession(&result, s, "")
		if s.CourseID != "" && !known[s.CourseID] {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueOrphanedSession,
				Description: fmt.Sprintf("Session %s references unknown course %s", s.ID, s.CourseID),
				Items:       []string{s.ID},
			})
		}
	}

	for _, q := range quests {
		checkQuest(&result, q, "")
		if q.Status == models.QuestCompleted && q.CompletedAt == nil {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueCompletedNoDate,
				Description: fmt.Sprintf("Quest \"%s\" is completed but has no completion time", q.Title),
				Items:       []string{q.ID},
			})
		}
	}

	return result
}

// Package storagetest holds behavior checks shared by every storage.Provider.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

// Run exercises a provider returned by newProvider. Each subtest gets a fresh,
// initialized provider.
func Run(t *testing.T, newProvider func(t *testing.T) storage.Provider) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, p storage.Provider)
	}{
		{"DefaultSettings", testDefaultSettings},
		{"SaveSettings", testSaveSettings},
		{"CourseRoundTrip", testCourseRoundTrip},
		{"CourseOrdering", testCourseOrdering},
		{"UpdateCourse", testUpdateCourse},
		{"SoftDelete", testSoftDelete},
		{"SyllabusItems", testSyllabusItems},
		{"Sessions", testSessions},
		{"Quests", testQuests},
		{"MissingCourse", testMissingCourse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newProvider(t))
		})
	}
}

var base = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func course(id, name string) models.Course {
	return models.Course{ID: id, Name: name, CreatedAt: base.AddDate(0, 0, -30)}
}

func testDefaultSettings(t *testing.T, p storage.Provider) {
	got, err := p.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	want := models.DefaultSettings()
	if got != want {
		t.Errorf("expected default settings %+v, got %+v", want, got)
	}
}

func testSaveSettings(t *testing.T, p storage.Provider) {
	settings := models.DefaultSettings()
	settings.Weights.StudyTime = 0.4
	settings.Weights.Consistency = 0.15
	settings.Thresholds.Good = 70
	settings.Timezone = "America/New_York"
	settings.DailyStudyMinutes = 90
	settings.PriorityTopN = 5

	if err := p.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := p.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != settings {
		t.Errorf("expected %+v, got %+v", settings, got)
	}
}

func testCourseRoundTrip(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	deadline := base.AddDate(0, 0, 7)
	c := course("c1", "Biology")
	c.Syllabus = []models.SyllabusItem{
		{ID: "i1", Title: "Cells", EstimatedHours: 2.5, Priority: models.PriorityHigh, Deadline: &deadline},
		{ID: "i2", Title: "Genetics", EstimatedHours: 4, Priority: models.PriorityLow, Completed: true},
	}

	if err := p.AddCourse(c); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	got, err := p.GetCourse(ctx, "c1")
	if err != nil {
		t.Fatalf("GetCourse failed: %v", err)
	}
	if got.Name != "Biology" || !got.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("unexpected course: %+v", got)
	}
	if len(got.Syllabus) != 2 {
		t.Fatalf("expected 2 syllabus items, got %d", len(got.Syllabus))
	}
	first := got.Syllabus[0]
	if first.ID != "i1" || first.CourseID != "c1" || first.EstimatedHours != 2.5 || first.Priority != models.PriorityHigh {
		t.Errorf("unexpected first item: %+v", first)
	}
	if first.Deadline == nil || !first.Deadline.Equal(deadline) {
		t.Errorf("expected deadline %v, got %v", deadline, first.Deadline)
	}
	if !got.Syllabus[1].Completed || got.Syllabus[1].Deadline != nil {
		t.Errorf("unexpected second item: %+v", got.Syllabus[1])
	}
}

func testCourseOrdering(t *testing.T, p storage.Provider) {
	for _, c := range []models.Course{course("c2", "Physics"), course("c1", "Chemistry"), course("c3", "Art")} {
		if err := p.AddCourse(c); err != nil {
			t.Fatalf("AddCourse failed: %v", err)
		}
	}

	courses, err := p.GetAllCourses(context.Background(), false)
	if err != nil {
		t.Fatalf("GetAllCourses failed: %v", err)
	}
	want := []string{"Art", "Chemistry", "Physics"}
	if len(courses) != len(want) {
		t.Fatalf("expected %d courses, got %d", len(want), len(courses))
	}
	for i, name := range want {
		if courses[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, courses[i].Name)
		}
	}
}

func testUpdateCourse(t *testing.T, p storage.Provider) {
	c := course("c1", "Biology")
	if err := p.AddCourse(c); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	c.Name = "Molecular Biology"
	if err := p.UpdateCourse(c); err != nil {
		t.Fatalf("UpdateCourse failed: %v", err)
	}
	got, err := p.GetCourse(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetCourse failed: %v", err)
	}
	if got.Name != "Molecular Biology" {
		t.Errorf("expected updated name, got %s", got.Name)
	}

	err = p.UpdateCourse(course("missing", "Nothing"))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testSoftDelete(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	if err := p.AddCourse(course("c1", "Biology")); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	if err := p.DeleteCourse("c1"); err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}
	if _, err := p.GetCourse(ctx, "c1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected deleted course to be hidden, got %v", err)
	}
	if err := p.DeleteCourse("c1"); !errors.Is(err, storage.ErrAlreadyDeleted) {
		t.Errorf("expected ErrAlreadyDeleted, got %v", err)
	}

	active, err := p.GetAllCourses(ctx, false)
	if err != nil {
		t.Fatalf("GetAllCourses failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active courses, got %d", len(active))
	}
	all, err := p.GetAllCourses(ctx, true)
	if err != nil {
		t.Fatalf("GetAllCourses failed: %v", err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Fatalf("expected one deleted course, got %+v", all)
	}

	if err := p.RestoreCourse("c1"); err != nil {
		t.Fatalf("RestoreCourse failed: %v", err)
	}
	if _, err := p.GetCourse(ctx, "c1"); err != nil {
		t.Errorf("expected restored course, got %v", err)
	}
	if err := p.RestoreCourse("c1"); !errors.Is(err, storage.ErrNotDeleted) {
		t.Errorf("expected ErrNotDeleted, got %v", err)
	}
	if err := p.DeleteCourse("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testSyllabusItems(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	if err := p.AddCourse(course("c1", "Biology")); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	for _, item := range []models.SyllabusItem{
		{ID: "i1", CourseID: "c1", Title: "Cells", EstimatedHours: 1, Priority: models.PriorityMedium},
		{ID: "i0", CourseID: "c1", Title: "Evolution", EstimatedHours: 3, Priority: models.PriorityMedium},
	} {
		if err := p.AddSyllabusItem(item); err != nil {
			t.Fatalf("AddSyllabusItem failed: %v", err)
		}
	}

	got, err := p.GetCourse(ctx, "c1")
	if err != nil {
		t.Fatalf("GetCourse failed: %v", err)
	}
	if len(got.Syllabus) != 2 || got.Syllabus[0].ID != "i1" || got.Syllabus[1].ID != "i0" {
		t.Fatalf("expected items in insertion order, got %+v", got.Syllabus)
	}

	item, err := p.GetSyllabusItem(ctx, "i0")
	if err != nil {
		t.Fatalf("GetSyllabusItem failed: %v", err)
	}
	item.Completed = true
	if err := p.UpdateSyllabusItem(item); err != nil {
		t.Fatalf("UpdateSyllabusItem failed: %v", err)
	}
	item, err = p.GetSyllabusItem(ctx, "i0")
	if err != nil {
		t.Fatalf("GetSyllabusItem failed: %v", err)
	}
	if !item.Completed {
		t.Error("expected item to be completed")
	}

	if _, err := p.GetSyllabusItem(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	err = p.UpdateSyllabusItem(models.SyllabusItem{ID: "missing", Title: "x"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testSessions(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	for _, c := range []models.Course{course("c1", "Biology"), course("c2", "Physics")} {
		if err := p.AddCourse(c); err != nil {
			t.Fatalf("AddCourse failed: %v", err)
		}
	}

	sessions := []models.StudySession{
		{ID: "s1", CourseID: "c1", StartedAt: base.Add(-2 * time.Hour), DurationMinutes: 45, Notes: "review"},
		{ID: "s2", CourseID: "c2", StartedAt: base.Add(-26 * time.Hour), DurationMinutes: 30},
		{ID: "s3", CourseID: "c1", StartedAt: base.Add(-50 * time.Hour), DurationMinutes: 60},
		{ID: "s4", StartedAt: base.Add(-1 * time.Hour), DurationMinutes: 20},
	}
	for _, s := range sessions {
		if err := p.AddSession(s); err != nil {
			t.Fatalf("AddSession failed: %v", err)
		}
	}

	got, err := p.GetSessionsForCourse(ctx, "c1")
	if err != nil {
		t.Fatalf("GetSessionsForCourse failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s3" || got[1].ID != "s1" {
		t.Fatalf("expected sessions ordered by start, got %+v", got)
	}
	if got[1].Notes != "review" || got[1].DurationMinutes != 45 || !got[1].StartedAt.Equal(sessions[0].StartedAt) {
		t.Errorf("unexpected session: %+v", got[1])
	}

	all, err := p.GetAllSessions(ctx)
	if err != nil {
		t.Fatalf("GetAllSessions failed: %v", err)
	}
	if len(all) != 4 || all[3].ID != "s4" || all[3].CourseID != "" {
		t.Errorf("unexpected sessions: %+v", all)
	}

	none, err := p.GetSessionsForCourse(ctx, "missing")
	if err != nil {
		t.Fatalf("GetSessionsForCourse failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no sessions, got %d", len(none))
	}
}

func testQuests(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	if err := p.AddCourse(course("c1", "Biology")); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	for _, q := range []models.Quest{
		{ID: "q1", CourseID: "c1", Title: "Read chapter 2", Status: models.QuestAvailable},
		{ID: "q2", CourseID: "c1", Title: "Flashcards", Status: models.QuestInProgress},
	} {
		if err := p.AddQuest(q); err != nil {
			t.Fatalf("AddQuest failed: %v", err)
		}
	}

	q, err := p.GetQuest(ctx, "q1")
	if err != nil {
		t.Fatalf("GetQuest failed: %v", err)
	}
	completedAt := base.Add(-time.Hour)
	q.Status = models.QuestCompleted
	q.CompletedAt = &completedAt
	if err := p.UpdateQuest(q); err != nil {
		t.Fatalf("UpdateQuest failed: %v", err)
	}

	quests, err := p.GetQuestsForCourse(ctx, "c1")
	if err != nil {
		t.Fatalf("GetQuestsForCourse failed: %v", err)
	}
	if len(quests) != 2 || quests[0].ID != "q2" || quests[1].ID != "q1" {
		t.Fatalf("expected quests ordered by title, got %+v", quests)
	}
	if quests[1].Status != models.QuestCompleted || quests[1].CompletedAt == nil || !quests[1].CompletedAt.Equal(completedAt) {
		t.Errorf("unexpected completed quest: %+v", quests[1])
	}

	all, err := p.GetAllQuests(ctx)
	if err != nil {
		t.Fatalf("GetAllQuests failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 quests, got %d", len(all))
	}

	if _, err := p.GetQuest(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := p.UpdateQuest(models.Quest{ID: "missing"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testMissingCourse(t *testing.T, p storage.Provider) {
	err := p.AddSyllabusItem(models.SyllabusItem{ID: "i1", CourseID: "missing", Title: "x"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("AddSyllabusItem: expected ErrNotFound, got %v", err)
	}
	err = p.AddSession(models.StudySession{ID: "s1", CourseID: "missing", StartedAt: base, DurationMinutes: 10})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("AddSession: expected ErrNotFound, got %v", err)
	}
	err = p.AddQuest(models.Quest{ID: "q1", CourseID: "missing", Title: "x", Status: models.QuestAvailable})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("AddQuest: expected ErrNotFound, got %v", err)
	}
	if _, err := p.GetCourse(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCourse: expected ErrNotFound, got %v", err)
	}
}

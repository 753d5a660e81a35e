package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/storage/storagetest"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "studylit.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_Provider(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		return setupTestStore(t)
	})
}

func TestStore_LoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	store := setupTestStore(t)
	if err := store.AddCourse(models.Course{ID: "c1", Name: "Biology"}); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}
	store.Close()

	reopened := NewStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetCourse(context.Background(), "c1"); err != nil {
		t.Errorf("expected course after reopen, got %v", err)
	}
}

func TestStore_InitIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	settings := models.DefaultSettings()
	settings.DailyStudyMinutes = 45
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	// A second Init must not reset existing settings.
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.DailyStudyMinutes != 45 {
		t.Errorf("expected settings to survive re-init, got %d", got.DailyStudyMinutes)
	}
}

func TestStore_AddCourseReplacesSyllabus(t *testing.T) {
	store := setupTestStore(t)
	course := models.Course{ID: "c1", Name: "Biology", Syllabus: []models.SyllabusItem{
		{ID: "i1", Title: "Cells"},
		{ID: "i2", Title: "Genetics"},
	}}
	if err := store.AddCourse(course); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	course.Syllabus = course.Syllabus[1:]
	if err := store.AddCourse(course); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	got, err := store.GetCourse(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetCourse failed: %v", err)
	}
	if len(got.Syllabus) != 1 || got.Syllabus[0].ID != "i2" {
		t.Errorf("expected only i2, got %+v", got.Syllabus)
	}
}

func TestParseTime_AcceptsRFC3339(t *testing.T) {
	got, err := parseTime("2024-03-15T12:00:00+02:00")
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if got.UTC().Hour() != 10 {
		t.Errorf("expected 10:00 UTC, got %v", got.UTC())
	}

	if _, err := parseTime("yesterday"); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}

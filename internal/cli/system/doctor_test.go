package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
)

func setupTestDoctorDB(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out}, store, &out
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, store, out := setupTestDoctorDB(t)

	if _, err := backup.NewManager(store.GetConfigPath()).CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor command failed on healthy database: %v\n%s", err, out)
	}
	if !strings.Contains(out.String(), "All diagnostics passed!") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out.String(), "WARNING") {
		t.Errorf("expected no warnings:\n%s", out)
	}
}

func TestDoctorCmd_MissingBackups(t *testing.T) {
	ctx, _, out := setupTestDoctorDB(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command should not fail on missing backups: %v", err)
	}
	if !strings.Contains(out.String(), "Backups present: WARNING") {
		t.Errorf("expected backup warning:\n%s", out)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store, out := setupTestDoctorDB(t)

	if _, err := store.GetDB().Exec("UPDATE schema_version SET version = 999"); err != nil {
		t.Fatalf("failed to corrupt schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with a future schema version")
	}
	if !strings.Contains(out.String(), "Schema version: FAIL") {
		t.Errorf("expected schema failure:\n%s", out)
	}
}

func TestDoctorCmd_BrokenSchemaBeforeLoad(t *testing.T) {
	_, store, _ := setupTestDoctorDB(t)
	if _, err := store.GetDB().Exec("UPDATE schema_version SET version = 999"); err != nil {
		t.Fatalf("failed to corrupt schema version: %v", err)
	}
	store.Close()

	fresh := sqlite.NewStore(store.GetConfigPath())
	defer fresh.Close()
	var out bytes.Buffer
	if err := (&DoctorCmd{}).Run(&cli.Context{Store: fresh, Out: &out}); err == nil {
		t.Error("doctor command should fail with a future schema version")
	}
	if !strings.Contains(out.String(), "Storage reachable: OK") || !strings.Contains(out.String(), "Schema version: FAIL") {
		t.Errorf("expected a reachable store with a schema failure:\n%s", out.String())
	}
}

func TestDoctorCmd_InvalidSettings(t *testing.T) {
	ctx, store, out := setupTestDoctorDB(t)

	settings := models.DefaultSettings()
	settings.Weights.StudyTime = 0.9
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail when weights do not sum to 1")
	}
	if !strings.Contains(out.String(), "Settings: FAIL") {
		t.Errorf("expected settings failure:\n%s", out)
	}
}

func TestDoctorCmd_MalformedData(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "studylit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	course := models.Course{
		ID:        "c1",
		Name:      "Chemistry",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Syllabus:  []models.SyllabusItem{{ID: "t1", Title: "Atoms", EstimatedHours: -2, Priority: models.PriorityHigh}},
	}
	if err := store.AddCourse(course); err != nil {
		t.Fatalf("failed to add course: %v", err)
	}

	var out bytes.Buffer
	err := (&DoctorCmd{}).Run(&cli.Context{Store: store, Out: &out})
	if err == nil {
		t.Error("doctor command should fail on malformed records")
	}
	if !strings.Contains(out.String(), "Data validation: FAIL") || !strings.Contains(out.String(), "estimated_hours") {
		t.Errorf("expected validation failure:\n%s", out.String())
	}
}

func TestDoctorCmd_DuplicateNamesWarn(t *testing.T) {
	ctx, store, out := setupTestDoctorDB(t)

	for _, id := range []string{"c1", "c2"} {
		if err := store.AddCourse(models.Course{ID: id, Name: "Chemistry", CreatedAt: time.Now()}); err != nil {
			t.Fatalf("failed to add course: %v", err)
		}
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("duplicate names should only warn: %v", err)
	}
	if !strings.Contains(out.String(), "Data consistency: WARNING") {
		t.Errorf("expected consistency warning:\n%s", out)
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx := &cli.Context{Clock: func() time.Time { return time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC) }}
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("expected an error for a clock set to 1999")
	}
}

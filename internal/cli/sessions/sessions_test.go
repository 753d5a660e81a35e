package sessions

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

var testNow = time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) (*cli.Context, *storage.JSONStore, *bytes.Buffer) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "studylit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	if err := store.AddCourse(models.Course{ID: "c1", Name: "Chemistry", CreatedAt: testNow.AddDate(0, -1, 0)}); err != nil {
		t.Fatalf("failed to add course: %v", err)
	}

	var out bytes.Buffer
	ctx := &cli.Context{
		Store: store,
		Out:   &out,
		Clock: func() time.Time { return testNow },
	}
	return ctx, store, &out
}

func TestSessionLogCmd_DefaultsToNow(t *testing.T) {
	ctx, store, out := setupTestStore(t)

	cmd := &SessionLogCmd{Course: "chemistry", Minutes: 45, Notes: " chapter 3 "}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("session log failed: %v", err)
	}

	sessions, err := store.GetSessionsForCourse(context.Background(), "c1")
	if err != nil {
		t.Fatalf("failed to get sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	s := sessions[0]
	if want := testNow.Add(-45 * time.Minute); !s.StartedAt.Equal(want) {
		t.Errorf("StartedAt = %v, want %v", s.StartedAt, want)
	}
	if s.Notes != "chapter 3" {
		t.Errorf("Notes = %q", s.Notes)
	}
	if !strings.Contains(out.String(), "Logged 45 minutes of Chemistry at 2024-03-15 19:15") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestSessionLogCmd_ExplicitStart(t *testing.T) {
	ctx, store, _ := setupTestStore(t)

	if err := (&SessionLogCmd{Minutes: 30, At: "2024-03-14 09:30"}).Run(ctx); err != nil {
		t.Fatalf("session log failed: %v", err)
	}

	sessions, err := store.GetAllSessions(context.Background())
	if err != nil {
		t.Fatalf("failed to get sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].CourseID != "" {
		t.Fatalf("expected one general session, got %+v", sessions)
	}
	if want := time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC); !sessions[0].StartedAt.Equal(want) {
		t.Errorf("StartedAt = %v, want %v", sessions[0].StartedAt, want)
	}
}

func TestSessionLogCmd_Invalid(t *testing.T) {
	ctx, _, _ := setupTestStore(t)

	tests := []struct {
		name string
		cmd  SessionLogCmd
	}{
		{"zero minutes", SessionLogCmd{Minutes: 0}},
		{"bad start", SessionLogCmd{Minutes: 30, At: "yesterday"}},
		{"future start", SessionLogCmd{Minutes: 30, At: "2024-03-16 09:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}

	err := (&SessionLogCmd{Course: "Astrology", Minutes: 30}).Run(ctx)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("unknown course: got %v, want ErrNotFound", err)
	}
}

func TestSessionListCmd(t *testing.T) {
	ctx, store, out := setupTestStore(t)

	sessions := []models.StudySession{
		{ID: "s1", CourseID: "c1", StartedAt: testNow.AddDate(0, 0, -1), DurationMinutes: 60},
		{ID: "s2", StartedAt: testNow.AddDate(0, 0, -2), DurationMinutes: 30},
		{ID: "s3", CourseID: "c1", StartedAt: testNow.AddDate(0, 0, -30), DurationMinutes: 90, Notes: "old"},
	}
	for _, s := range sessions {
		if err := store.AddSession(s); err != nil {
			t.Fatalf("failed to add session: %v", err)
		}
	}

	if err := (&SessionListCmd{Days: 14}).Run(ctx); err != nil {
		t.Fatalf("session list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1.5h over 2 sessions") || strings.Contains(out.String(), "old") {
		t.Errorf("expected the two recent sessions:\n%s", out)
	}

	out.Reset()
	if err := (&SessionListCmd{Course: "Chemistry"}).Run(ctx); err != nil {
		t.Fatalf("session list failed: %v", err)
	}
	if !strings.Contains(out.String(), "over 2 sessions") || !strings.Contains(out.String(), "old") {
		t.Errorf("expected both Chemistry sessions:\n%s", out)
	}
}

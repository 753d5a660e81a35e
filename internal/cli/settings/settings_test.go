package settings

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
	"github.com/julianstephens/studylit/internal/validation"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out}, &out
}

func ptr[T any](v T) *T { return &v }

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	for _, want := range []string{"Study Time:            0.3", "Excellent:             85", "Day Start:             18:00"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &SettingsCmd{
		WeightStudyTime:   ptr(0.4),
		WeightConsistency: ptr(0.15),
		FlagMaxIdleDays:   ptr(10),
		Timezone:          ptr("Europe/Berlin"),
		DailyMinutes:      ptr(90),
		DayStart:          ptr("07:30"),
		TopN:              ptr(3),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	want := models.DefaultSettings()
	want.Weights.StudyTime = 0.4
	want.Weights.Consistency = 0.15
	want.Criteria.MaxDaysSinceLastStudy = 10
	want.Timezone = "Europe/Berlin"
	want.DailyStudyMinutes = 90
	want.DayStart = "07:30"
	want.PriorityTopN = 3
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestSettingsCmd_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name      string
		cmd       SettingsCmd
		malformed bool
	}{
		{"weights off", SettingsCmd{WeightStudyTime: ptr(0.5)}, true},
		{"thresholds out of order", SettingsCmd{ThresholdGood: ptr(90)}, true},
		{"quest rate above 100", SettingsCmd{FlagMinQuestRate: ptr(150)}, true},
		{"bad timezone", SettingsCmd{Timezone: ptr("Mars/Olympus")}, false},
		{"bad day start", SettingsCmd{DayStart: ptr("7pm")}, false},
		{"zero daily minutes", SettingsCmd{DailyMinutes: ptr(0)}, false},
		{"zero top n", SettingsCmd{TopN: ptr(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)

			err := tt.cmd.Run(ctx)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, validation.ErrMalformedInput); got != tt.malformed {
				t.Errorf("errors.Is(err, ErrMalformedInput) = %v, want %v (err: %v)", got, tt.malformed, err)
			}

			stored, err := ctx.Store.GetSettings()
			if err != nil {
				t.Fatalf("failed to get settings: %v", err)
			}
			if stored != models.DefaultSettings() {
				t.Errorf("invalid settings were saved: %+v", stored)
			}
		})
	}
}

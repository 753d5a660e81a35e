package models

import (
	"testing"
	"time"

	"github.com/julianstephens/studylit/internal/constants"
)

func TestCourseHelpers(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	soon := now.AddDate(0, 0, 2)
	later := now.AddDate(0, 0, 10)

	course := Course{
		Syllabus: []SyllabusItem{
			{Title: "overdue", EstimatedHours: 1, Deadline: &past},
			{Title: "later", EstimatedHours: 2, Deadline: &later},
			{Title: "done", EstimatedHours: 0.5, Deadline: &soon, Completed: true},
			{Title: "no deadline", EstimatedHours: 1.5},
		},
	}

	if got := course.EstimatedMinutes(); got != 300 {
		t.Errorf("EstimatedMinutes() = %v, want 300", got)
	}
	if got := course.CompletedTopics(); got != 1 {
		t.Errorf("CompletedTopics() = %d, want 1", got)
	}

	next := course.NextDeadline(now)
	if next == nil || !next.Equal(later) {
		t.Errorf("NextDeadline() = %v, want %v", next, later)
	}
	// The returned time is a copy.
	*next = now
	if !course.Syllabus[1].Deadline.Equal(later) {
		t.Error("NextDeadline() returned a pointer into the syllabus")
	}

	if got := (Course{}).NextDeadline(now); got != nil {
		t.Errorf("NextDeadline() on empty course = %v, want nil", got)
	}
}

func TestPriorityValid(t *testing.T) {
	tests := []struct {
		p    Priority
		want bool
	}{
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{"urgent", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("Priority(%q).Valid() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	settings := DefaultSettings()
	settings.Weights.StudyTime = 0.4
	settings.Weights.Consistency = 0.15
	settings.Criteria.MaxDaysSinceLastStudy = 3
	settings.Timezone = "Europe/Berlin"
	settings.DayStart = "07:30"
	settings.PriorityTopN = 3

	got, err := MapToSettings(SettingsToMap(settings))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if got != settings {
		t.Errorf("round trip = %+v, want %+v", got, settings)
	}
}

func TestMapToSettings_Defaults(t *testing.T) {
	got, err := MapToSettings(map[string]string{
		constants.SettingDailyStudyMinutes: "90",
		"unknown_key":                      "ignored",
	})
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}

	want := DefaultSettings()
	want.DailyStudyMinutes = 90
	if got != want {
		t.Errorf("MapToSettings() = %+v, want %+v", got, want)
	}
}

func TestMapToSettings_InvalidNumber(t *testing.T) {
	_, err := MapToSettings(map[string]string{constants.SettingThresholdGood: "seventy"})
	if err == nil {
		t.Fatal("expected error for non-numeric threshold")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	var s Settings
	ApplyDefaultSettings(&s)
	if s.Timezone != "Local" || s.DayStart != "18:00" || s.DailyStudyMinutes != 120 || s.PriorityTopN != 5 {
		t.Errorf("ApplyDefaultSettings() = %+v", s)
	}
}

func TestAnalysisConfig(t *testing.T) {
	s := DefaultSettings()
	cfg := s.AnalysisConfig()
	if cfg.Weights != s.Weights || cfg.Thresholds != s.Thresholds || cfg.Criteria != s.Criteria {
		t.Errorf("AnalysisConfig() = %+v, does not mirror settings", cfg)
	}
}

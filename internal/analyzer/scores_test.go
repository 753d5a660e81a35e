package analyzer

import (
	"testing"

	"github.com/julianstephens/studylit/internal/models"
)

func TestStudyTimeScore(t *testing.T) {
	course := models.Course{ID: "c1", Syllabus: []models.SyllabusItem{
		{ID: "t1", EstimatedHours: 4, Priority: models.PriorityHigh},
		{ID: "t2", EstimatedHours: 6, Priority: models.PriorityLow, Completed: true},
	}}

	tests := []struct {
		name    string
		course  models.Course
		minutes int
		want    int
	}{
		{name: "no estimate is neutral", course: models.Course{ID: "c0"}, minutes: 300, want: 50},
		{name: "on target", course: course, minutes: 600, want: 100},
		{name: "lower edge of band", course: course, minutes: 480, want: 100},
		{name: "upper edge of band", course: course, minutes: 720, want: 100},
		{name: "well under target", course: course, minutes: 360, want: 75},
		{name: "double the estimate", course: course, minutes: 1200, want: 60},
		{name: "no study at all", course: course, minutes: 0, want: 0},
		{name: "far over target floors at zero", course: course, minutes: 3000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := []models.StudySession{{ID: "s1", StartedAt: testNow, DurationMinutes: tt.minutes}}
			if got := StudyTimeScore(tt.course, sessions); got != tt.want {
				t.Errorf("StudyTimeScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStudyTimeScore_MonotonicUnderTarget(t *testing.T) {
	course := models.Course{ID: "c1", Syllabus: []models.SyllabusItem{{ID: "t1", EstimatedHours: 10, Priority: models.PriorityMedium}}}

	prev := -1
	for minutes := 0; minutes <= 600; minutes += 15 {
		score := StudyTimeScore(course, []models.StudySession{{ID: "s", StartedAt: testNow, DurationMinutes: minutes}})
		if score < prev {
			t.Fatalf("score decreased from %d to %d at %d minutes", prev, score, minutes)
		}
		prev = score
	}
}

func TestQuestCompletionScore(t *testing.T) {
	tests := []struct {
		name   string
		quests []models.Quest
		want   int
	}{
		{name: "no quests", quests: nil, want: 50},
		{name: "all completed", quests: quests(models.QuestCompleted, models.QuestCompleted), want: 100},
		{name: "two of three", quests: quests(models.QuestCompleted, models.QuestCompleted, models.QuestAvailable), want: 67},
		{name: "none completed", quests: quests(models.QuestFailed, models.QuestExpired, models.QuestInProgress), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuestCompletionScore(tt.quests); got != tt.want {
				t.Errorf("QuestCompletionScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuestCompletionRate(t *testing.T) {
	if got := QuestCompletionRate(nil); got != 0 {
		t.Errorf("QuestCompletionRate(nil) = %v, want 0", got)
	}
	if got := QuestCompletionRate(quests(models.QuestCompleted, models.QuestAvailable)); got != 0.5 {
		t.Errorf("QuestCompletionRate() = %v, want 0.5", got)
	}
}

func TestConsistencyScore(t *testing.T) {
	tests := []struct {
		name     string
		sessions []models.StudySession
		want     int
	}{
		{name: "no sessions", sessions: nil, want: 0},
		{name: "five a week, studied today", sessions: dailyPairs(testNow, 0, 9), want: 100},
		{name: "half the target, studied today", sessions: sessionsDaysAgo(testNow, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9), want: 50},
		{name: "half the target, last session 3 days ago", sessions: sessionsDaysAgo(testNow, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12), want: 45},
		{name: "full frequency but 10 days stale", sessions: dailyPairs(testNow, 10, 19), want: 40},
		{name: "only sessions outside the window", sessions: sessionsDaysAgo(testNow, 28, 30, 40), want: 0},
		{name: "future sessions are ignored", sessions: sessionsDaysAgo(testNow, -2), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConsistencyScore(tt.sessions, testNow); got != tt.want {
				t.Errorf("ConsistencyScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConsistencyScore_StaleGapBelowNeutral(t *testing.T) {
	for gap := 10; gap <= 20; gap++ {
		sessions := dailyPairs(testNow, gap, gap+12)
		if got := ConsistencyScore(sessions, testNow); got >= 50 {
			t.Errorf("gap of %d days: ConsistencyScore() = %d, want < 50", gap, got)
		}
	}
}

func TestDeadlineAdherenceScore(t *testing.T) {
	past := testNow.AddDate(0, 0, -3)
	tests := []struct {
		name     string
		syllabus []models.SyllabusItem
		want     int
	}{
		{
			name:     "no deadlines",
			syllabus: []models.SyllabusItem{{ID: "t1", Priority: models.PriorityLow}},
			want:     50,
		},
		{
			name:     "completed with past deadline",
			syllabus: []models.SyllabusItem{{ID: "t1", Priority: models.PriorityLow, Deadline: timePtr(past), Completed: true}},
			want:     100,
		},
		{
			name:     "incomplete with past deadline",
			syllabus: []models.SyllabusItem{{ID: "t1", Priority: models.PriorityLow, Deadline: timePtr(past)}},
			want:     0,
		},
		{
			name:     "incomplete due in a week",
			syllabus: []models.SyllabusItem{{ID: "t1", Priority: models.PriorityLow, Deadline: timePtr(testNow.AddDate(0, 0, 7))}},
			want:     50,
		},
		{
			name:     "incomplete due in a month",
			syllabus: []models.SyllabusItem{{ID: "t1", Priority: models.PriorityLow, Deadline: timePtr(testNow.AddDate(0, 1, 0))}},
			want:     100,
		},
		{
			name: "mean of items with deadlines",
			syllabus: []models.SyllabusItem{
				{ID: "t1", Priority: models.PriorityLow, Deadline: timePtr(past), Completed: true},
				{ID: "t2", Priority: models.PriorityLow, Deadline: timePtr(past)},
				{ID: "t3", Priority: models.PriorityLow},
			},
			want: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := models.Course{ID: "c1", Syllabus: tt.syllabus}
			if got := DeadlineAdherenceScore(course, testNow); got != tt.want {
				t.Errorf("DeadlineAdherenceScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDeadlineAdherenceScore_DecreasesAsDeadlineApproaches(t *testing.T) {
	deadline := testNow.AddDate(0, 0, 20)
	course := models.Course{ID: "c1", Syllabus: []models.SyllabusItem{{ID: "t1", Priority: models.PriorityHigh, Deadline: &deadline}}}

	prev := 101
	for day := 0; day <= 21; day++ {
		score := DeadlineAdherenceScore(course, testNow.AddDate(0, 0, day))
		if score > prev {
			t.Fatalf("day %d: score rose from %d to %d", day, prev, score)
		}
		prev = score
	}
	if prev != 0 {
		t.Errorf("score after the deadline = %d, want 0", prev)
	}
}

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		ratio float64
		want  ratioDirection
	}{
		{0, underTarget},
		{0.99, underTarget},
		{1, overTarget},
		{2.5, overTarget},
	}
	for _, tt := range tests {
		if got := directionOf(tt.ratio); got != tt.want {
			t.Errorf("directionOf(%v) = %d, want %d", tt.ratio, got, tt.want)
		}
		if _, ok := ratioSlopes[directionOf(tt.ratio)]; !ok {
			t.Errorf("no slope for ratio %v", tt.ratio)
		}
	}
}

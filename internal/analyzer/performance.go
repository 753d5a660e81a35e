package analyzer

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/validation"
)

// SubjectData is everything the caller fetched for one subject.
type SubjectData struct {
	Course   models.Course
	Sessions []models.StudySession
	Quests   []models.Quest
}

// CalculateSubScores runs the four independent calculators.
func CalculateSubScores(data SubjectData, now time.Time) models.SubScores {
	return models.SubScores{
		StudyTime:         StudyTimeScore(data.Course, data.Sessions),
		QuestCompletion:   QuestCompletionScore(data.Quests),
		Consistency:       ConsistencyScore(data.Sessions, now),
		DeadlineAdherence: DeadlineAdherenceScore(data.Course, now),
	}
}

// AnalyzeSubject computes a performance snapshot for one subject.
// Structurally invalid data is rejected with an error matching validation.ErrMalformedInput.
func AnalyzeSubject(data SubjectData, cfg models.AnalysisConfig, now time.Time) (models.SubjectPerformance, error) {
	if err := validation.ValidateSubject(data.Course, data.Sessions, data.Quests); err != nil {
		return models.SubjectPerformance{}, fmt.Errorf("analyze subject %q: %w", data.Course.ID, err)
	}

	scores := CalculateSubScores(data, now)
	overall := OverallScore(scores, cfg.Weights)
	status, grade := DeterminePerformanceStatus(overall, cfg.Thresholds)
	reasons := FlagReasons(overall, data.Sessions, data.Quests, cfg.Criteria, now)

	return models.SubjectPerformance{
		SubjectID:             data.Course.ID,
		SubjectName:           data.Course.Name,
		OverallScore:          overall,
		Status:                status,
		Grade:                 grade,
		Scores:                scores,
		Flagged:               len(reasons) > 0,
		FlagReasons:           reasons,
		Recommendations:       GenerateRecommendations(scores, cfg.Weights),
		TotalStudyMinutes:     models.TotalMinutes(data.Sessions),
		EstimatedStudyMinutes: int(math.Round(data.Course.EstimatedMinutes())),
		QuestsCompleted:       models.CountCompleted(data.Quests),
		QuestsTotal:           len(data.Quests),
		TopicsCompleted:       data.Course.CompletedTopics(),
		TopicsTotal:           len(data.Course.Syllabus),
		LastStudied:           models.LatestSession(sessionsUpTo(data.Sessions, now)),
		StudyFrequency:        StudyFrequency(data.Sessions, now),
		AverageSessionMinutes: AverageSessionMinutes(data.Sessions),
		ConsistentStudyDays:   ConsistentStudyDays(data.Sessions, now),
		NextDeadline:          data.Course.NextDeadline(now),
		CalculatedAt:          now,
	}, nil
}

// Summarize aggregates the performances of all of a user's subjects.
func Summarize(performances []models.SubjectPerformance) models.PerformanceSummary {
	summary := models.PerformanceSummary{TotalSubjects: len(performances)}
	if len(performances) == 0 {
		return summary
	}

	var scoreSum, consistencySum int
	var points float64
	for _, p := range performances {
		scoreSum += p.OverallScore
		consistencySum += p.Scores.Consistency
		points += gradePoints[p.Grade]
		summary.TotalStudyMinutes += p.TotalStudyMinutes
		if p.Status == models.StatusNeedsAttention || p.Status == models.StatusCritical {
			summary.NeedsAttentionCount++
		}
		if p.Flagged {
			summary.FlaggedCount++
		}
		summary.StudyStreakDays = max(summary.StudyStreakDays, p.ConsistentStudyDays)
	}

	n := float64(len(performances))
	summary.AverageScore = roundScore(float64(scoreSum) / n)
	summary.ConsistencyScore = roundScore(float64(consistencySum) / n)
	summary.GPA = math.Round(points/n*100) / 100
	return summary
}

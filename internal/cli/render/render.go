// Package render draws analysis results and stored records as terminal tables.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/planner"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func statusLabel(status models.PerformanceStatus) string {
	label := strings.ReplaceAll(string(status), "_", " ")
	switch status {
	case models.StatusCritical:
		return dangerStyle.Render(label)
	case models.StatusNeedsAttention:
		return warningStyle.Render(label)
	}
	return label
}

func urgencyLabel(u models.Urgency) string {
	switch u {
	case models.UrgencyCritical:
		return dangerStyle.Render(string(u))
	case models.UrgencyHigh:
		return warningStyle.Render(string(u))
	}
	return string(u)
}

func flagMark(flagged bool) string {
	if flagged {
		return dangerStyle.Render("!")
	}
	return ""
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(constants.DateFormat)
}

func formatHours(minutes int) string {
	return strconv.FormatFloat(float64(minutes)/60, 'f', 1, 64) + "h"
}

// Performances lists one row per subject.
func Performances(w io.Writer, perfs []models.SubjectPerformance) {
	if len(perfs) == 0 {
		fmt.Fprintln(w, "No courses to analyze. Add one with 'studylit course add'.")
		return
	}

	t := newTable("", "Subject", "Score", "Grade", "Status", "Study", "Quests", "Consist.", "Deadline", "Last studied")
	for _, p := range perfs {
		t.Row(
			flagMark(p.Flagged),
			p.SubjectName,
			strconv.Itoa(p.OverallScore),
			string(p.Grade),
			statusLabel(p.Status),
			strconv.Itoa(p.Scores.StudyTime),
			strconv.Itoa(p.Scores.QuestCompletion),
			strconv.Itoa(p.Scores.Consistency),
			strconv.Itoa(p.Scores.DeadlineAdherence),
			formatDate(p.LastStudied),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// Performance shows the full analysis of a single subject.
func Performance(w io.Writer, p models.SubjectPerformance) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s  %d (%s, %s)", p.SubjectName, p.OverallScore, p.Grade, statusLabel(p.Status))))

	t := newTable("Metric", "Value")
	t.Row("Study time score", strconv.Itoa(p.Scores.StudyTime))
	t.Row("Quest completion score", strconv.Itoa(p.Scores.QuestCompletion))
	t.Row("Consistency score", strconv.Itoa(p.Scores.Consistency))
	t.Row("Deadline adherence score", strconv.Itoa(p.Scores.DeadlineAdherence))
	t.Row("Studied / estimated", formatHours(p.TotalStudyMinutes)+" / "+formatHours(p.EstimatedStudyMinutes))
	t.Row("Quests completed", fmt.Sprintf("%d/%d", p.QuestsCompleted, p.QuestsTotal))
	t.Row("Topics completed", fmt.Sprintf("%d/%d", p.TopicsCompleted, p.TopicsTotal))
	t.Row("Sessions per week", strconv.FormatFloat(p.StudyFrequency, 'f', 1, 64))
	t.Row("Average session", strconv.FormatFloat(p.AverageSessionMinutes, 'f', 0, 64)+" min")
	t.Row("Study streak", fmt.Sprintf("%d days", p.ConsistentStudyDays))
	t.Row("Last studied", formatDate(p.LastStudied))
	t.Row("Next deadline", formatDate(p.NextDeadline))
	fmt.Fprintln(w, t.Render())

	if p.Flagged {
		reasons := make([]string, len(p.FlagReasons))
		for i, r := range p.FlagReasons {
			reasons[i] = strings.ReplaceAll(string(r), "_", " ")
		}
		fmt.Fprintln(w, dangerStyle.Render("Flagged: "+strings.Join(reasons, ", ")))
	}

	if len(p.Recommendations) == 0 {
		fmt.Fprintln(w, "\nNo recommendations. Keep it up.")
		return
	}
	fmt.Fprintln(w, "\nRecommendations:")
	for _, r := range p.Recommendations {
		fmt.Fprintf(w, "\n[%s] %s (+%d, %s)\n", r.Priority, r.Title, r.EstimatedImpact, r.TimeToImplement)
		fmt.Fprintf(w, "  %s\n", r.Description)
		for _, item := range r.ActionItems {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
}

// Priorities lists the ranked study priorities.
func Priorities(w io.Writer, priorities []models.StudyPriority) {
	if len(priorities) == 0 {
		fmt.Fprintln(w, "No study priorities.")
		return
	}

	t := newTable("#", "Subject", "Score", "Urgency", "Time", "Action")
	for _, p := range priorities {
		share := "-"
		if p.TimeAllocationPercent > 0 {
			share = strconv.Itoa(p.TimeAllocationPercent) + "%"
		}
		t.Row(
			strconv.Itoa(p.Rank),
			p.SubjectName+flagMark(p.Flagged),
			strconv.Itoa(p.OverallScore),
			urgencyLabel(p.Urgency),
			share,
			p.RecommendedAction,
		)
	}
	fmt.Fprintln(w, t.Render())
}

// Summary prints the aggregate over all subjects.
func Summary(w io.Writer, s models.PerformanceSummary) {
	t := newTable("Summary", "")
	t.Row("Subjects", strconv.Itoa(s.TotalSubjects))
	t.Row("Average score", strconv.Itoa(s.AverageScore))
	t.Row("GPA", strconv.FormatFloat(s.GPA, 'f', 2, 64))
	t.Row("Needs attention", strconv.Itoa(s.NeedsAttentionCount))
	t.Row("Flagged", strconv.Itoa(s.FlaggedCount))
	t.Row("Consistency", strconv.Itoa(s.ConsistencyScore))
	t.Row("Total study time", formatHours(s.TotalStudyMinutes))
	t.Row("Study streak", fmt.Sprintf("%d days", s.StudyStreakDays))
	fmt.Fprintln(w, t.Render())
}

// Plan prints the study blocks of a day.
func Plan(w io.Writer, plan planner.StudyPlan) {
	fmt.Fprintln(w, titleStyle.Render("Study plan for "+plan.Date))
	if len(plan.Blocks) == 0 {
		fmt.Fprintln(w, "Nothing to schedule.")
		return
	}

	t := newTable("Time", "Subject", "Minutes", "Urgency")
	for _, b := range plan.Blocks {
		t.Row(b.Start+"-"+b.End, b.SubjectName, strconv.Itoa(b.Minutes), urgencyLabel(b.Urgency))
	}
	fmt.Fprintln(w, t.Render())
	if plan.UnallocatedMinutes > 0 {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d minutes left unallocated", plan.UnallocatedMinutes)))
	}
}

// Courses lists courses with their syllabus progress.
func Courses(w io.Writer, courses []models.Course, now time.Time) {
	if len(courses) == 0 {
		fmt.Fprintln(w, "No courses found.")
		return
	}

	t := newTable("ID", "Name", "Topics", "Estimate", "Next deadline", "")
	for _, c := range courses {
		state := ""
		if c.DeletedAt != nil {
			state = mutedStyle.Render("deleted")
		}
		t.Row(
			c.ID,
			c.Name,
			fmt.Sprintf("%d/%d", c.CompletedTopics(), len(c.Syllabus)),
			formatHours(int(c.EstimatedMinutes())),
			formatDate(c.NextDeadline(now)),
			state,
		)
	}
	fmt.Fprintln(w, t.Render())
}

// Syllabus lists the topics of one course.
func Syllabus(w io.Writer, course models.Course) {
	fmt.Fprintln(w, titleStyle.Render(course.Name+" ("+course.ID+")"))
	if len(course.Syllabus) == 0 {
		fmt.Fprintln(w, "No topics yet.")
		return
	}

	t := newTable("ID", "Topic", "Hours", "Priority", "Deadline", "Done")
	for _, item := range course.Syllabus {
		done := ""
		if item.Completed {
			done = "✓"
		}
		t.Row(
			item.ID,
			item.Title,
			strconv.FormatFloat(item.EstimatedHours, 'f', -1, 64),
			string(item.Priority),
			formatDate(item.Deadline),
			done,
		)
	}
	fmt.Fprintln(w, t.Render())
}

// Sessions lists study sessions. names maps course IDs to display names.
func Sessions(w io.Writer, sessions []models.StudySession, names map[string]string) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No study sessions logged.")
		return
	}

	t := newTable("Started", "Course", "Minutes", "Notes")
	for _, s := range sessions {
		course := names[s.CourseID]
		if course == "" {
			course = mutedStyle.Render("-")
		}
		t.Row(s.StartedAt.Format("2006-01-02 15:04"), course, strconv.Itoa(s.DurationMinutes), s.Notes)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Total: %s over %d sessions\n", formatHours(models.TotalMinutes(sessions)), len(sessions))
}

// Quests lists quests. names maps course IDs to display names.
func Quests(w io.Writer, quests []models.Quest, names map[string]string) {
	if len(quests) == 0 {
		fmt.Fprintln(w, "No quests found.")
		return
	}

	t := newTable("ID", "Course", "Title", "Status", "Completed")
	for _, q := range quests {
		t.Row(q.ID, names[q.CourseID], q.Title, strings.ReplaceAll(string(q.Status), "_", " "), formatDate(q.CompletedAt))
	}
	fmt.Fprintln(w, t.Render())
}

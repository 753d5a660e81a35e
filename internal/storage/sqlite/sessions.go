package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

func (s *Store) courseExists(id string) error {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM courses WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}
	return err
}

func (s *Store) AddSession(session models.StudySession) error {
	courseID := sql.NullString{String: session.CourseID, Valid: session.CourseID != ""}
	if courseID.Valid {
		if err := s.courseExists(session.CourseID); err != nil {
			return err
		}
	}

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO study_sessions (id, course_id, started_at, duration_minutes, notes) VALUES (?, ?, ?, ?, ?)",
		session.ID, courseID, formatTime(session.StartedAt), session.DurationMinutes, session.Notes,
	)
	return err
}

func (s *Store) querySessions(ctx context.Context, query string, args ...any) ([]models.StudySession, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.StudySession{}
	for rows.Next() {
		var (
			session   models.StudySession
			courseID  sql.NullString
			startedAt string
		)
		if err := rows.Scan(&session.ID, &courseID, &startedAt, &session.DurationMinutes, &session.Notes); err != nil {
			return nil, err
		}
		t, err := parseTime(startedAt)
		if err != nil {
			return nil, fmt.Errorf("session %s: invalid started_at: %w", session.ID, err)
		}
		session.StartedAt = t
		session.CourseID = courseID.String
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *Store) GetSessionsForCourse(ctx context.Context, courseID string) ([]models.StudySession, error) {
	return s.querySessions(ctx,
		"SELECT id, course_id, started_at, duration_minutes, notes FROM study_sessions WHERE course_id = ? ORDER BY started_at, id",
		courseID)
}

func (s *Store) GetAllSessions(ctx context.Context) ([]models.StudySession, error) {
	return s.querySessions(ctx,
		"SELECT id, course_id, started_at, duration_minutes, notes FROM study_sessions ORDER BY started_at, id")
}

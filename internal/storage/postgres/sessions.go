package postgres

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
	err := s.db.QueryRow("SELECT 1 FROM courses WHERE id = $1", id).Scan(&one)
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

	_, err := s.db.Exec(`
		INSERT INTO study_sessions (id, course_id, started_at, duration_minutes, notes) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET course_id = EXCLUDED.course_id, started_at = EXCLUDED.started_at,
			duration_minutes = EXCLUDED.duration_minutes, notes = EXCLUDED.notes
	`, session.ID, courseID, session.StartedAt, session.DurationMinutes, session.Notes)
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
			session  models.StudySession
			courseID sql.NullString
		)
		if err := rows.Scan(&session.ID, &courseID, &session.StartedAt, &session.DurationMinutes, &session.Notes); err != nil {
			return nil, err
		}
		session.CourseID = courseID.String
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *Store) GetSessionsForCourse(ctx context.Context, courseID string) ([]models.StudySession, error) {
	return s.querySessions(ctx,
		"SELECT id, course_id, started_at, duration_minutes, notes FROM study_sessions WHERE course_id = $1 ORDER BY started_at, id",
		courseID)
}

func (s *Store) GetAllSessions(ctx context.Context) ([]models.StudySession, error) {
	return s.querySessions(ctx,
		"SELECT id, course_id, started_at, duration_minutes, notes FROM study_sessions ORDER BY started_at, id")
}

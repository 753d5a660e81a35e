package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

const syllabusColumns = "id, course_id, title, estimated_hours, priority, deadline, completed"

type rowScanner interface {
	Scan(dest ...any) error
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func (s *Store) AddCourse(course models.Course) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO courses (id, name, created_at, deleted_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, created_at = EXCLUDED.created_at, deleted_at = EXCLUDED.deleted_at
	`, course.ID, course.Name, course.CreatedAt, course.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM syllabus_items WHERE course_id = $1", course.ID); err != nil {
		return fmt.Errorf("failed to reset syllabus: %w", err)
	}

	for pos, item := range course.Syllabus {
		item.CourseID = course.ID
		if err := insertItem(tx, item, pos); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertItem(tx *sql.Tx, item models.SyllabusItem, pos int) error {
	_, err := tx.Exec(
		"INSERT INTO syllabus_items ("+syllabusColumns+", position) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		item.ID, item.CourseID, item.Title, item.EstimatedHours, string(item.Priority),
		nullTime(item.Deadline), item.Completed, pos,
	)
	if err != nil {
		return fmt.Errorf("failed to insert syllabus item %s: %w", item.ID, err)
	}
	return nil
}

func scanCourse(row rowScanner) (models.Course, error) {
	var (
		course    models.Course
		deletedAt sql.NullString
	)
	if err := row.Scan(&course.ID, &course.Name, &course.CreatedAt, &deletedAt); err != nil {
		return models.Course{}, err
	}
	if deletedAt.Valid {
		course.DeletedAt = &deletedAt.String
	}
	return course, nil
}

func scanItem(row rowScanner) (models.SyllabusItem, error) {
	var (
		item     models.SyllabusItem
		priority string
		deadline sql.NullTime
	)
	if err := row.Scan(&item.ID, &item.CourseID, &item.Title, &item.EstimatedHours, &priority, &deadline, &item.Completed); err != nil {
		return models.SyllabusItem{}, err
	}
	item.Priority = models.Priority(priority)
	item.Deadline = timePtr(deadline)
	return item, nil
}

func (s *Store) syllabusFor(ctx context.Context, courseID string) ([]models.SyllabusItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+syllabusColumns+" FROM syllabus_items WHERE course_id = $1 ORDER BY position, id", courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.SyllabusItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) GetCourse(ctx context.Context, id string) (models.Course, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, deleted_at FROM courses WHERE id = $1 AND deleted_at IS NULL", id)
	course, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Course{}, fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Course{}, err
	}

	course.Syllabus, err = s.syllabusFor(ctx, id)
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (s *Store) GetAllCourses(ctx context.Context, includeDeleted bool) ([]models.Course, error) {
	query := "SELECT id, name, created_at, deleted_at FROM courses"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += ` ORDER BY name COLLATE "C", id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range courses {
		items, err := s.syllabusFor(ctx, courses[i].ID)
		if err != nil {
			return nil, err
		}
		courses[i].Syllabus = items
	}
	return courses, nil
}

func (s *Store) UpdateCourse(course models.Course) error {
	res, err := s.db.Exec(
		"UPDATE courses SET name = $1, created_at = $2, deleted_at = $3 WHERE id = $4",
		course.Name, course.CreatedAt, course.DeletedAt, course.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "course", course.ID)
}

func requireRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) courseDeletedAt(id string) (sql.NullString, error) {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM courses WHERE id = $1", id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.NullString{}, fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}
	return deletedAt, err
}

func (s *Store) DeleteCourse(id string) error {
	deletedAt, err := s.courseDeletedAt(id)
	if err != nil {
		return err
	}
	if deletedAt.Valid {
		return fmt.Errorf("course %s: %w", id, storage.ErrAlreadyDeleted)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE courses SET deleted_at = $1 WHERE id = $2", now, id)
	return err
}

func (s *Store) RestoreCourse(id string) error {
	deletedAt, err := s.courseDeletedAt(id)
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("course %s: %w", id, storage.ErrNotDeleted)
	}

	_, err = s.db.Exec("UPDATE courses SET deleted_at = NULL WHERE id = $1", id)
	return err
}

func (s *Store) AddSyllabusItem(item models.SyllabusItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var pos int
	err = tx.QueryRow(
		"SELECT (SELECT count(*) FROM syllabus_items WHERE course_id = $1) FROM courses WHERE id = $1 FOR UPDATE",
		item.CourseID,
	).Scan(&pos)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("course %s: %w", item.CourseID, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if err := insertItem(tx, item, pos); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetSyllabusItem(ctx context.Context, id string) (models.SyllabusItem, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+syllabusColumns+" FROM syllabus_items WHERE id = $1", id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyllabusItem{}, fmt.Errorf("syllabus item %s: %w", id, storage.ErrNotFound)
	}
	return item, err
}

func (s *Store) UpdateSyllabusItem(item models.SyllabusItem) error {
	res, err := s.db.Exec(
		"UPDATE syllabus_items SET title = $1, estimated_hours = $2, priority = $3, deadline = $4, completed = $5 WHERE id = $6",
		item.Title, item.EstimatedHours, string(item.Priority), nullTime(item.Deadline), item.Completed, item.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "syllabus item", item.ID)
}

package sqlite

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

func (s *Store) AddCourse(course models.Course) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO courses (id, name, created_at, deleted_at) VALUES (?, ?, ?, ?)",
		course.ID, course.Name, formatTime(course.CreatedAt), course.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM syllabus_items WHERE course_id = ?", course.ID); err != nil {
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
		"INSERT INTO syllabus_items ("+syllabusColumns+", position) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		item.ID, item.CourseID, item.Title, item.EstimatedHours, string(item.Priority),
		formatNullTime(item.Deadline), item.Completed, pos,
	)
	if err != nil {
		return fmt.Errorf("failed to insert syllabus item %s: %w", item.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (models.Course, error) {
	var (
		course    models.Course
		createdAt string
		deletedAt sql.NullString
	)
	if err := row.Scan(&course.ID, &course.Name, &createdAt, &deletedAt); err != nil {
		return models.Course{}, err
	}

	t, err := parseTime(createdAt)
	if err != nil {
		return models.Course{}, fmt.Errorf("course %s: invalid created_at: %w", course.ID, err)
	}
	course.CreatedAt = t
	if deletedAt.Valid {
		course.DeletedAt = &deletedAt.String
	}
	return course, nil
}

func scanItem(row rowScanner) (models.SyllabusItem, error) {
	var (
		item     models.SyllabusItem
		priority string
		deadline sql.NullString
	)
	if err := row.Scan(&item.ID, &item.CourseID, &item.Title, &item.EstimatedHours, &priority, &deadline, &item.Completed); err != nil {
		return models.SyllabusItem{}, err
	}
	item.Priority = models.Priority(priority)

	d, err := parseNullTime(deadline)
	if err != nil {
		return models.SyllabusItem{}, fmt.Errorf("syllabus item %s: invalid deadline: %w", item.ID, err)
	}
	item.Deadline = d
	return item, nil
}

func (s *Store) syllabusFor(ctx context.Context, courseID string) ([]models.SyllabusItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+syllabusColumns+" FROM syllabus_items WHERE course_id = ? ORDER BY position, id", courseID)
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
		"SELECT id, name, created_at, deleted_at FROM courses WHERE id = ? AND deleted_at IS NULL", id)
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
	query += " ORDER BY name, id"

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
		"UPDATE courses SET name = ?, created_at = ?, deleted_at = ? WHERE id = ?",
		course.Name, formatTime(course.CreatedAt), course.DeletedAt, course.ID,
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

// courseDeletedAt reports whether the course exists and its deletion timestamp.
func (s *Store) courseDeletedAt(id string) (sql.NullString, error) {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM courses WHERE id = ?", id).Scan(&deletedAt)
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
	_, err = s.db.Exec("UPDATE courses SET deleted_at = ? WHERE id = ?", now, id)
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

	_, err = s.db.Exec("UPDATE courses SET deleted_at = NULL WHERE id = ?", id)
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
		"SELECT (SELECT count(*) FROM syllabus_items WHERE course_id = ?) FROM courses WHERE id = ?",
		item.CourseID, item.CourseID,
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
	row := s.db.QueryRowContext(ctx, "SELECT "+syllabusColumns+" FROM syllabus_items WHERE id = ?", id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyllabusItem{}, fmt.Errorf("syllabus item %s: %w", id, storage.ErrNotFound)
	}
	return item, err
}

func (s *Store) UpdateSyllabusItem(item models.SyllabusItem) error {
	res, err := s.db.Exec(
		"UPDATE syllabus_items SET title = ?, estimated_hours = ?, priority = ?, deadline = ?, completed = ? WHERE id = ?",
		item.Title, item.EstimatedHours, string(item.Priority), formatNullTime(item.Deadline), item.Completed, item.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "syllabus item", item.ID)
}

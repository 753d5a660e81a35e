package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

const questColumns = "id, course_id, title, status, completed_at"

func scanQuest(row rowScanner) (models.Quest, error) {
	var (
		quest       models.Quest
		status      string
		completedAt sql.NullString
	)
	if err := row.Scan(&quest.ID, &quest.CourseID, &quest.Title, &status, &completedAt); err != nil {
		return models.Quest{}, err
	}
	quest.Status = models.QuestStatus(status)

	t, err := parseNullTime(completedAt)
	if err != nil {
		return models.Quest{}, fmt.Errorf("quest %s: invalid completed_at: %w", quest.ID, err)
	}
	quest.CompletedAt = t
	return quest, nil
}

func (s *Store) AddQuest(quest models.Quest) error {
	if err := s.courseExists(quest.CourseID); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO quests ("+questColumns+") VALUES (?, ?, ?, ?, ?)",
		quest.ID, quest.CourseID, quest.Title, string(quest.Status), formatNullTime(quest.CompletedAt),
	)
	return err
}

func (s *Store) GetQuest(ctx context.Context, id string) (models.Quest, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+questColumns+" FROM quests WHERE id = ?", id)
	quest, err := scanQuest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Quest{}, fmt.Errorf("quest %s: %w", id, storage.ErrNotFound)
	}
	return quest, err
}

func (s *Store) UpdateQuest(quest models.Quest) error {
	res, err := s.db.Exec(
		"UPDATE quests SET title = ?, status = ?, completed_at = ? WHERE id = ?",
		quest.Title, string(quest.Status), formatNullTime(quest.CompletedAt), quest.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "quest", quest.ID)
}

func (s *Store) queryQuests(ctx context.Context, query string, args ...any) ([]models.Quest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quests := []models.Quest{}
	for rows.Next() {
		quest, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, quest)
	}
	return quests, rows.Err()
}

func (s *Store) GetQuestsForCourse(ctx context.Context, courseID string) ([]models.Quest, error) {
	return s.queryQuests(ctx,
		"SELECT "+questColumns+" FROM quests WHERE course_id = ? ORDER BY title, id", courseID)
}

func (s *Store) GetAllQuests(ctx context.Context) ([]models.Quest, error) {
	return s.queryQuests(ctx, "SELECT "+questColumns+" FROM quests ORDER BY title, id")
}

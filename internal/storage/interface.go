package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/studylit/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotInitialized = errors.New("storage not initialized, run 'studylit init' first")
	ErrAlreadyDeleted = errors.New("already deleted")
	ErrNotDeleted     = errors.New("not deleted")
)

// Provider is the data source for courses, study sessions and quests.
// Read methods take a context so callers can bound slow fetches.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Courses. GetCourse and GetAllCourses populate the syllabus.
	AddCourse(models.Course) error
	GetCourse(ctx context.Context, id string) (models.Course, error)
	GetAllCourses(ctx context.Context, includeDeleted bool) ([]models.Course, error)
	UpdateCourse(models.Course) error
	DeleteCourse(id string) error
	RestoreCourse(id string) error

	// Syllabus items
	AddSyllabusItem(models.SyllabusItem) error
	GetSyllabusItem(ctx context.Context, id string) (models.SyllabusItem, error)
	UpdateSyllabusItem(models.SyllabusItem) error

	// Study sessions, ordered by start time
	AddSession(models.StudySession) error
	GetSessionsForCourse(ctx context.Context, courseID string) ([]models.StudySession, error)
	GetAllSessions(ctx context.Context) ([]models.StudySession, error)

	// Quests
	AddQuest(models.Quest) error
	GetQuest(ctx context.Context, id string) (models.Quest, error)
	UpdateQuest(models.Quest) error
	GetQuestsForCourse(ctx context.Context, courseID string) ([]models.Quest, error)
	GetAllQuests(ctx context.Context) ([]models.Quest, error)

	// Utils
	GetConfigPath() string
}

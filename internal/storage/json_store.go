package storage

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/julianstephens/studylit/internal/models"
)

type jsonData struct {
	Version  int                            `json:"version"`
	Settings models.Settings                `json:"settings"`
	Courses  map[string]models.Course       `json:"courses"`
	Sessions map[string]models.StudySession `json:"sessions"`
	Quests   map[string]models.Quest        `json:"quests"`
}

// JSONStore keeps all data in a single JSON file. It is safe for concurrent use
// within one process.
type JSONStore struct {
	path string
	mu   sync.RWMutex
	data *jsonData
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.data = &jsonData{
		Version:  1,
		Settings: models.DefaultSettings(),
		Courses:  make(map[string]models.Course),
		Sessions: make(map[string]models.StudySession),
		Quests:   make(map[string]models.Quest),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	data := &jsonData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if data.Courses == nil {
		data.Courses = make(map[string]models.Course)
	}
	if data.Sessions == nil {
		data.Sessions = make(map[string]models.StudySession)
	}
	if data.Quests == nil {
		data.Quests = make(map[string]models.Quest)
	}
	models.ApplyDefaultSettings(&data.Settings)
	s.data = data
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the file; callers hold the write lock.
func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.data.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Settings = settings
	return s.save()
}

func (s *JSONStore) AddCourse(course models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	course.Syllabus = slices.Clone(course.Syllabus)
	for i := range course.Syllabus {
		course.Syllabus[i].CourseID = course.ID
	}
	s.data.Courses[course.ID] = course
	return s.save()
}

func (s *JSONStore) GetCourse(ctx context.Context, id string) (models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return models.Course{}, err
	}

	course, ok := s.data.Courses[id]
	if !ok || course.DeletedAt != nil {
		return models.Course{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	course.Syllabus = slices.Clone(course.Syllabus)
	return course, nil
}

func (s *JSONStore) GetAllCourses(ctx context.Context, includeDeleted bool) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}

	courses := lo.Filter(lo.Values(s.data.Courses), func(c models.Course, _ int) bool {
		return includeDeleted || c.DeletedAt == nil
	})
	for i := range courses {
		courses[i].Syllabus = slices.Clone(courses[i].Syllabus)
	}
	slices.SortFunc(courses, func(a, b models.Course) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return courses, nil
}

func (s *JSONStore) UpdateCourse(course models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	existing, ok := s.data.Courses[course.ID]
	if !ok {
		return fmt.Errorf("course %s: %w", course.ID, ErrNotFound)
	}
	existing.Name = course.Name
	existing.CreatedAt = course.CreatedAt
	existing.DeletedAt = course.DeletedAt
	s.data.Courses[course.ID] = existing
	return s.save()
}

func (s *JSONStore) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	course, ok := s.data.Courses[id]
	if !ok {
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	if course.DeletedAt != nil {
		return fmt.Errorf("course %s: %w", id, ErrAlreadyDeleted)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	course.DeletedAt = &now
	s.data.Courses[id] = course
	return s.save()
}

func (s *JSONStore) RestoreCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	course, ok := s.data.Courses[id]
	if !ok {
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	if course.DeletedAt == nil {
		return fmt.Errorf("course %s: %w", id, ErrNotDeleted)
	}

	course.DeletedAt = nil
	s.data.Courses[id] = course
	return s.save()
}

func (s *JSONStore) AddSyllabusItem(item models.SyllabusItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	course, ok := s.data.Courses[item.CourseID]
	if !ok {
		return fmt.Errorf("course %s: %w", item.CourseID, ErrNotFound)
	}
	course.Syllabus = append(slices.Clone(course.Syllabus), item)
	s.data.Courses[course.ID] = course
	return s.save()
}

// findItem returns the course holding the item and the item's index.
func (s *JSONStore) findItem(id string) (models.Course, int, bool) {
	for _, course := range s.data.Courses {
		for i, item := range course.Syllabus {
			if item.ID == id {
				return course, i, true
			}
		}
	}
	return models.Course{}, 0, false
}

func (s *JSONStore) GetSyllabusItem(ctx context.Context, id string) (models.SyllabusItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return models.SyllabusItem{}, err
	}

	course, i, ok := s.findItem(id)
	if !ok {
		return models.SyllabusItem{}, fmt.Errorf("syllabus item %s: %w", id, ErrNotFound)
	}
	return course.Syllabus[i], nil
}

func (s *JSONStore) UpdateSyllabusItem(item models.SyllabusItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	course, i, ok := s.findItem(item.ID)
	if !ok {
		return fmt.Errorf("syllabus item %s: %w", item.ID, ErrNotFound)
	}
	item.CourseID = course.ID
	course.Syllabus = slices.Clone(course.Syllabus)
	course.Syllabus[i] = item
	s.data.Courses[course.ID] = course
	return s.save()
}

func (s *JSONStore) AddSession(session models.StudySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	if session.CourseID != "" {
		if _, ok := s.data.Courses[session.CourseID]; !ok {
			return fmt.Errorf("course %s: %w", session.CourseID, ErrNotFound)
		}
	}
	s.data.Sessions[session.ID] = session
	return s.save()
}

func (s *JSONStore) sessionsWhere(keep func(models.StudySession) bool) []models.StudySession {
	sessions := lo.Filter(lo.Values(s.data.Sessions), func(ss models.StudySession, _ int) bool {
		return keep(ss)
	})
	slices.SortFunc(sessions, func(a, b models.StudySession) int {
		return cmp.Or(a.StartedAt.Compare(b.StartedAt), cmp.Compare(a.ID, b.ID))
	})
	return sessions
}

func (s *JSONStore) GetSessionsForCourse(ctx context.Context, courseID string) ([]models.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.sessionsWhere(func(ss models.StudySession) bool { return ss.CourseID == courseID }), nil
}

func (s *JSONStore) GetAllSessions(ctx context.Context) ([]models.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.sessionsWhere(func(models.StudySession) bool { return true }), nil
}

func (s *JSONStore) AddQuest(quest models.Quest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	if _, ok := s.data.Courses[quest.CourseID]; !ok {
		return fmt.Errorf("course %s: %w", quest.CourseID, ErrNotFound)
	}
	s.data.Quests[quest.ID] = quest
	return s.save()
}

func (s *JSONStore) GetQuest(ctx context.Context, id string) (models.Quest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return models.Quest{}, err
	}

	quest, ok := s.data.Quests[id]
	if !ok {
		return models.Quest{}, fmt.Errorf("quest %s: %w", id, ErrNotFound)
	}
	return quest, nil
}

func (s *JSONStore) UpdateQuest(quest models.Quest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	if _, ok := s.data.Quests[quest.ID]; !ok {
		return fmt.Errorf("quest %s: %w", quest.ID, ErrNotFound)
	}
	s.data.Quests[quest.ID] = quest
	return s.save()
}

func (s *JSONStore) questsWhere(keep func(models.Quest) bool) []models.Quest {
	quests := lo.Filter(lo.Values(s.data.Quests), func(q models.Quest, _ int) bool {
		return keep(q)
	})
	slices.SortFunc(quests, func(a, b models.Quest) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
	})
	return quests
}

func (s *JSONStore) GetQuestsForCourse(ctx context.Context, courseID string) ([]models.Quest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.questsWhere(func(q models.Quest) bool { return q.CourseID == courseID }), nil
}

func (s *JSONStore) GetAllQuests(ctx context.Context) ([]models.Quest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.questsWhere(func(models.Quest) bool { return true }), nil
}

// GetConfigPath returns the path to the JSON file.
//
// Running multiple studylit processes against the same file at the same time
// is not supported and may lose writes.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}

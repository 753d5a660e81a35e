package cli

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

// CourseNames maps every course ID, deleted or not, to its name.
func CourseNames(ctx context.Context, store storage.Provider) (map[string]string, error) {
	courses, err := store.GetAllCourses(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return lo.SliceToMap(courses, func(c models.Course) (string, string) {
		return c.ID, c.Name
	}), nil
}

package services

import (
	"context"
	"net/url"

	"github.com/isdelr/ecolearn/internal/models"
)

// LearningServiceProvider defines the interface for learning services.
type LearningServiceProvider interface {
	GeneratePath(ctx context.Context, topic, level string) (models.LearningPath, error)
	PersonalizePath(ctx context.Context, pathID string, prefs models.PathPreferences) (models.LearningPath, error)
	GetUserPaths(ctx context.Context) ([]models.LearningPath, error)
	GetPathByID(ctx context.Context, pathID string) (models.PathDetail, error)
}

// LearningService calls the /learning endpoints.
type LearningService struct {
	api Requester
}

// NewLearningService creates a new LearningService.
func NewLearningService(api Requester) *LearningService {
	return &LearningService{api: api}
}

// GeneratePath requests generation of a new learning path.
func (s *LearningService) GeneratePath(ctx context.Context, topic, level string) (models.LearningPath, error) {
	var path models.LearningPath
	err := s.api.Post(ctx, "/learning/generate", models.GeneratePathRequest{Topic: topic, Level: level}, &path)
	return path, err
}

// PersonalizePath adjusts an existing path with preference data.
func (s *LearningService) PersonalizePath(ctx context.Context, pathID string, prefs models.PathPreferences) (models.LearningPath, error) {
	var path models.LearningPath
	err := s.api.Post(ctx, "/learning/personalize/"+url.PathEscape(pathID), prefs, &path)
	return path, err
}

// GetUserPaths lists the current user's learning paths.
func (s *LearningService) GetUserPaths(ctx context.Context) ([]models.LearningPath, error) {
	var paths []models.LearningPath
	err := s.api.Get(ctx, "/learning/paths", &paths)
	return paths, err
}

// GetPathByID fetches one path with its sections.
func (s *LearningService) GetPathByID(ctx context.Context, pathID string) (models.PathDetail, error) {
	var detail models.PathDetail
	err := s.api.Get(ctx, "/learning/paths/"+url.PathEscape(pathID), &detail)
	return detail, err
}

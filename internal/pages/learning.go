package pages

import (
	"context"
	"fmt"

	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/services"
	"github.com/isdelr/ecolearn/internal/validation"
	"github.com/rs/zerolog/log"
)

// Learning is the learning path list.
type Learning struct {
	*Loader[[]models.LearningPath]
	svc services.LearningServiceProvider
}

// NewLearning creates a Learning controller.
func NewLearning(svc services.LearningServiceProvider) *Learning {
	return &Learning{
		Loader: NewLoader[[]models.LearningPath]("learning", svc.GetUserPaths),
		svc:    svc,
	}
}

// Generate asks for a new path and reloads the list once it exists.
func (l *Learning) Generate(ctx context.Context, topic, level string) (models.LearningPath, error) {
	req := models.GeneratePathRequest{Topic: topic, Level: level}
	if err := validation.Struct(req); err != nil {
		return models.LearningPath{}, err
	}

	path, err := l.svc.GeneratePath(ctx, req.Topic, req.Level)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to generate learning path")
		return models.LearningPath{}, fmt.Errorf("failed to generate path: %w", err)
	}
	l.Reload(ctx)
	return path, nil
}

// Personalize adjusts a path to the learner's preferences and reloads the list.
func (l *Learning) Personalize(ctx context.Context, pathID string, prefs models.PathPreferences) (models.LearningPath, error) {
	if pathID == "" {
		return models.LearningPath{}, validation.New("id", "this field is required")
	}
	if err := validation.Struct(prefs); err != nil {
		return models.LearningPath{}, err
	}

	path, err := l.svc.PersonalizePath(ctx, pathID, prefs)
	if err != nil {
		log.Error().Err(err).Str("pathID", pathID).Msg("Failed to personalize learning path")
		return models.LearningPath{}, fmt.Errorf("failed to personalize path: %w", err)
	}
	l.Reload(ctx)
	return path, nil
}

package services

import (
	"context"

	"github.com/isdelr/ecolearn/internal/models"
)

// CarbonServiceProvider defines the interface for carbon services.
type CarbonServiceProvider interface {
	CalculateCarbon(ctx context.Context, session models.SessionData) (models.CarbonCalculation, error)
	OffsetCarbon(ctx context.Context, amount float64) (models.OffsetResult, error)
	GetMetrics(ctx context.Context) (models.CarbonMetrics, error)
	GetHistory(ctx context.Context) ([]models.PlantationRecord, error)
	GetTimeline(ctx context.Context) (models.CarbonTimeline, error)
}

// CarbonService calls the /carbon endpoints.
type CarbonService struct {
	api Requester
}

// NewCarbonService creates a new CarbonService.
func NewCarbonService(api Requester) *CarbonService {
	return &CarbonService{api: api}
}

// CalculateCarbon computes the footprint of a learning session.
func (s *CarbonService) CalculateCarbon(ctx context.Context, session models.SessionData) (models.CarbonCalculation, error) {
	var result models.CarbonCalculation
	err := s.api.Post(ctx, "/carbon/calculate", session, &result)
	return result, err
}

// OffsetCarbon records a carbon-offset contribution of amount kg.
func (s *CarbonService) OffsetCarbon(ctx context.Context, amount float64) (models.OffsetResult, error) {
	var result models.OffsetResult
	err := s.api.Post(ctx, "/carbon/offset", models.OffsetRequest{Amount: amount}, &result)
	return result, err
}

// GetMetrics retrieves the aggregate carbon metrics of the current user.
func (s *CarbonService) GetMetrics(ctx context.Context) (models.CarbonMetrics, error) {
	var metrics models.CarbonMetrics
	err := s.api.Get(ctx, "/carbon/metrics", &metrics)
	return metrics, err
}

// GetHistory retrieves the plantation/offset history.
func (s *CarbonService) GetHistory(ctx context.Context) ([]models.PlantationRecord, error) {
	var history []models.PlantationRecord
	err := s.api.Get(ctx, "/carbon/history", &history)
	return history, err
}

// GetTimeline retrieves the dashboard chart series.
func (s *CarbonService) GetTimeline(ctx context.Context) (models.CarbonTimeline, error) {
	var timeline models.CarbonTimeline
	err := s.api.Get(ctx, "/carbon/timeline", &timeline)
	return timeline, err
}

package pages

import (
	"context"
	"fmt"
	"net/http"

	"github.com/isdelr/ecolearn/internal/apiclient"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/services"
	"github.com/rs/zerolog/log"
)

// DashboardData is everything the dashboard shows.
type DashboardData struct {
	Greeting    string
	Metrics     models.CarbonMetrics
	Timeline    models.CarbonTimeline
	TotalCarbon float64 // kg saved, the peak of the cumulative series
}

// Dashboard is the landing screen after login.
type Dashboard struct {
	*Loader[DashboardData]
}

// NewDashboard creates a Dashboard controller.
func NewDashboard(carbon services.CarbonServiceProvider, users UserSource) *Dashboard {
	return &Dashboard{Loader: NewLoader[DashboardData]("dashboard", func(ctx context.Context) (DashboardData, error) {
		metrics, err := carbon.GetMetrics(ctx)
		if err != nil {
			return DashboardData{}, fmt.Errorf("failed to get metrics: %w", err)
		}
		timeline, err := optionalTimeline(ctx, carbon, "dashboard")
		if err != nil {
			return DashboardData{}, fmt.Errorf("failed to get timeline: %w", err)
		}

		total := metrics.TotalCarbon
		if len(timeline.Carbon) > 0 {
			total = models.MaxCumulativeCarbon(timeline.Carbon)
		}
		return DashboardData{
			Greeting:    Greeting(users),
			Metrics:     metrics,
			Timeline:    timeline,
			TotalCarbon: total,
		}, nil
	})}
}

// Greeting is the name shown in the welcome line.
func Greeting(users UserSource) string {
	if users != nil {
		if user, ok := users.User(); ok && user.Name != "" {
			return user.Name
		}
	}
	return "User"
}

// optionalTimeline fetches the chart series. A backend that does not serve them yields
// empty series so the page still shows its metrics.
func optionalTimeline(ctx context.Context, carbon services.CarbonServiceProvider, page string) (models.CarbonTimeline, error) {
	timeline, err := carbon.GetTimeline(ctx)
	if apiclient.IsStatus(err, http.StatusNotFound, http.StatusNotImplemented) {
		log.Warn().Err(err).Str("page", page).Msg("Timeline not available, showing metrics only")
		return models.CarbonTimeline{}, nil
	}
	return timeline, err
}

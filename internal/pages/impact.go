package pages

import (
	"context"
	"fmt"
	"math"

	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/services"
)

// Emission factors used to make a carbon figure tangible.
const (
	planeKgPerKm      = 0.25
	carKgPerKm        = 0.12
	householdKgPerDay = 8.0
)

// Equivalences expresses an amount of CO2 in everyday terms.
type Equivalences struct {
	PlaneKm       int
	CarKm         int
	HouseholdDays int
}

// EquivalencesFor converts kg of CO2 into equivalences, rounded to whole units.
func EquivalencesFor(kg float64) Equivalences {
	return Equivalences{
		PlaneKm:       int(math.Round(kg / planeKgPerKm)),
		CarKm:         int(math.Round(kg / carKgPerKm)),
		HouseholdDays: int(math.Round(kg / householdKgPerDay)),
	}
}

// ImpactData is everything the carbon impact screen shows.
type ImpactData struct {
	Metrics      models.CarbonMetrics
	Carbon       []models.CarbonPoint
	Equivalences Equivalences
}

// Impact is the carbon metrics screen.
type Impact struct {
	*Loader[ImpactData]
}

// NewImpact creates an Impact controller.
func NewImpact(carbon services.CarbonServiceProvider) *Impact {
	return &Impact{Loader: NewLoader[ImpactData]("impact", func(ctx context.Context) (ImpactData, error) {
		metrics, err := carbon.GetMetrics(ctx)
		if err != nil {
			return ImpactData{}, fmt.Errorf("failed to get metrics: %w", err)
		}
		timeline, err := optionalTimeline(ctx, carbon, "impact")
		if err != nil {
			return ImpactData{}, fmt.Errorf("failed to get timeline: %w", err)
		}
		return ImpactData{
			Metrics:      metrics,
			Carbon:       timeline.Carbon,
			Equivalences: EquivalencesFor(metrics.TotalCarbon),
		}, nil
	})}
}

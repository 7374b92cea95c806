package pages

import (
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/services"
)

// Plantations is the tree planting history.
type Plantations struct {
	*Loader[[]models.PlantationRecord]
}

// NewPlantations creates a Plantations controller.
func NewPlantations(carbon services.CarbonServiceProvider) *Plantations {
	return &Plantations{Loader: NewLoader[[]models.PlantationRecord]("plantations", carbon.GetHistory)}
}

// Summary totals the loaded history.
func (p *Plantations) Summary() models.PlantationSummary {
	return models.Summarize(p.Snapshot().Data)
}

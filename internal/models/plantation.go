package models

// PlantationStatus is the lifecycle of a tree planting.
type PlantationStatus string

const (
	StatusPlanted    PlantationStatus = "Planted"
	StatusInProgress PlantationStatus = "InProgress"
)

// PlantationRecord is one entry of the append-only plantation history.
type PlantationRecord struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"` // YYYY-MM-DD
	Trees        int              `json:"trees"`
	CarbonOffset float64          `json:"carbonOffset"` // kg
	Location     string           `json:"location"`
	Status       PlantationStatus `json:"status"`
}

// PlantationSummary aggregates a history list.
type PlantationSummary struct {
	Trees         int
	CarbonOffset  float64
	Contributions int
}

// Summarize totals trees and offsets over records. An empty list yields the zero summary.
func Summarize(records []PlantationRecord) PlantationSummary {
	s := PlantationSummary{Contributions: len(records)}
	for _, r := range records {
		s.Trees += r.Trees
		s.CarbonOffset += r.CarbonOffset
	}
	return s
}

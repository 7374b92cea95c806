package models

// CarbonMetrics is the aggregate computed server side for the current user.
type CarbonMetrics struct {
	TotalCarbon    float64 `json:"totalCarbon"`
	ThisMonth      float64 `json:"thisMonth"`
	AvgPerSession  float64 `json:"avgPerSession"`
	Trend          string  `json:"trend"`
	ComparedTo     string  `json:"comparedTo"`
	TreesPlanted   int     `json:"treesPlanted"`
	CompletedPaths int     `json:"completedPaths"`
	LearningHours  int     `json:"learningHours"`
}

// SessionData describes a learning session whose footprint should be computed.
type SessionData struct {
	DurationHours float64 `json:"durationHours"`
	DataUsedMB    float64 `json:"dataUsedMB"`
	DeviceType    string  `json:"deviceType,omitempty"`   // mobile, tablet, laptop, desktop
	EnergySource  string  `json:"energySource,omitempty"` // renewable, mixed, fossil
}

// CarbonCalculation is the result of POST /carbon/calculate.
type CarbonCalculation struct {
	SessionCarbon float64 `json:"sessionCarbon"`
	TotalCarbon   float64 `json:"totalCarbon"`
	TreesNeeded   int     `json:"treesNeeded"`
}

// OffsetRequest is the body of POST /carbon/offset.
type OffsetRequest struct {
	Amount float64 `json:"amount"`
}

// OffsetResult is the result of POST /carbon/offset.
type OffsetResult struct {
	Record     PlantationRecord `json:"record"`
	TotalTrees int              `json:"totalTrees"`
}

// CarbonPoint is one cumulative sample of the carbon chart.
type CarbonPoint struct {
	Date   string  `json:"date"`
	Carbon float64 `json:"carbon"`
}

// TreesPoint is one bar of the trees chart.
type TreesPoint struct {
	Month string `json:"month"`
	Trees int    `json:"trees"`
}

// CarbonTimeline holds the dashboard chart series.
type CarbonTimeline struct {
	Carbon []CarbonPoint `json:"carbon"`
	Trees  []TreesPoint  `json:"trees"`
}

// MaxCumulativeCarbon returns the largest value of a cumulative carbon series.
func MaxCumulativeCarbon(points []CarbonPoint) float64 {
	var max float64
	for _, p := range points {
		if p.Carbon > max {
			max = p.Carbon
		}
	}
	return max
}

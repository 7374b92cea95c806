package fixtures

import "github.com/isdelr/ecolearn/internal/models"

// Demo account seeded into every Store. Its id is fixed so tokens survive a restart.
const (
	DemoUserID   = "7f1c2a9e-4b3d-4e8a-9c61-2d5e8f0a1b34"
	DemoName     = "Demo Learner"
	DemoEmail    = "demo@ecolearn.app"
	DemoPassword = "ecolearn"
)

func seedPaths() []models.LearningPath {
	return []models.LearningPath{
		{
			ID:          "1",
			Title:       "Renewable Energy",
			Description: "Discover the different sources of clean energy",
			Icon:        "⚡",
			Level:       models.LevelBeginner,
			Progress:    65,
			Duration:    45,
			CarbonSaved: 3.2,
		},
		{
			ID:          "2",
			Title:       "Sustainable Farming",
			Description: "Learn farming techniques that respect the land",
			Icon:        "🌾",
			Level:       models.LevelIntermediate,
			Progress:    30,
			Duration:    60,
			CarbonSaved: 2.8,
		},
		{
			ID:          "3",
			Title:       "Waste Management",
			Description: "Master recycling and waste reduction",
			Icon:        "♻️",
			Level:       models.LevelBeginner,
			Progress:    100,
			Duration:    30,
			CarbonSaved: 4.5,
		},
	}
}

func seedLessons() map[string]models.PathDetail {
	return map[string]models.PathDetail{
		"1": {
			ID:    "1",
			Title: "Introduction to Renewable Energy",
			Sections: []models.LessonSection{
				{
					Title: "What is renewable energy?",
					Content: "Renewable energy comes from sources that replenish naturally on a human timescale. " +
						"Unlike fossil fuels (oil, coal, natural gas), which take millions of years to form, " +
						"renewables are continuously available: solar energy from sunlight, wind energy, " +
						"hydropower from moving water, biomass from organic matter and geothermal heat from the Earth.",
					CarbonImpact: 0.5,
				},
				{
					Title: "Types of renewable energy",
					Content: "Each renewable source has its own strengths. Photovoltaic panels turn light into electricity. " +
						"Wind turbines harness moving air. Dams and marine turbines convert the force of water. " +
						"Biomass turns organic waste into energy, and geothermal plants tap the heat beneath our feet " +
						"to generate power or warm buildings.",
					CarbonImpact: 0.3,
				},
				{
					Title: "Benefits and challenges",
					Content: "Renewables cut greenhouse gas emissions, never run out, create local jobs and reduce " +
						"dependence on fossil fuels. They also face challenges: intermittency, high upfront costs, " +
						"the need for efficient storage and the footprint of manufacturing equipment. Technological " +
						"progress keeps making them more competitive.",
					CarbonImpact: 0.4,
				},
			},
			TotalSections:     3,
			CompletedSections: 0,
		},
	}
}

func seedHistory() []models.PlantationRecord {
	return []models.PlantationRecord{
		{ID: "1", Date: "2025-01-28", Trees: 3, CarbonOffset: 2.5, Location: "Amazon, Brazil", Status: models.StatusPlanted},
		{ID: "2", Date: "2025-01-20", Trees: 5, CarbonOffset: 4.2, Location: "Madagascar", Status: models.StatusPlanted},
		{ID: "3", Date: "2025-01-15", Trees: 2, CarbonOffset: 1.8, Location: "Kenya", Status: models.StatusPlanted},
		{ID: "4", Date: "2025-01-10", Trees: 4, CarbonOffset: 3.3, Location: "Indonesia", Status: models.StatusInProgress},
	}
}

func seedMetrics() models.CarbonMetrics {
	return models.CarbonMetrics{
		TotalCarbon:    32,
		ThisMonth:      7,
		AvgPerSession:  2.3,
		Trend:          "+15%",
		ComparedTo:     "last month",
		TreesPlanted:   15,
		CompletedPaths: 4,
		LearningHours:  145,
	}
}

func seedTimeline() models.CarbonTimeline {
	return models.CarbonTimeline{
		Carbon: []models.CarbonPoint{
			{Date: "2025-01-01", Carbon: 5},
			{Date: "2025-01-07", Carbon: 12},
			{Date: "2025-01-14", Carbon: 18},
			{Date: "2025-01-21", Carbon: 25},
			{Date: "2025-01-28", Carbon: 32},
		},
		Trees: []models.TreesPoint{
			{Month: "Sep", Trees: 3},
			{Month: "Oct", Trees: 5},
			{Month: "Nov", Trees: 8},
			{Month: "Dec", Trees: 12},
			{Month: "Jan", Trees: 15},
		},
	}
}

// Planting projects offsets are assigned to, in rotation.
var projectLocations = []string{
	"Amazon Rainforest, Brazil",
	"Kenya, Africa",
	"Borneo, Indonesia",
	"France, Europe",
}

package models

// Learning levels accepted by path generation.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// LearningPath is one entry of the user's path list.
type LearningPath struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Level       string  `json:"level,omitempty"`
	Progress    int     `json:"progress"`    // 0-100, display only
	Duration    int     `json:"duration"`    // minutes
	CarbonSaved float64 `json:"carbonSaved"` // kg
}

// LessonSection is one page of a lesson.
type LessonSection struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	CarbonImpact float64 `json:"carbonImpact"`
}

// PathDetail is a learning path with its ordered sections.
type PathDetail struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Sections          []LessonSection `json:"sections"`
	TotalSections     int             `json:"totalSections"`
	CompletedSections int             `json:"completedSections"`
}

// GeneratePathRequest is the body of POST /learning/generate.
type GeneratePathRequest struct {
	Topic string `json:"topic" validate:"required"`
	Level string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
}

// PathPreferences adjusts an existing path.
type PathPreferences struct {
	Level         string   `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	LearningStyle string   `json:"learningStyle,omitempty"`
	Interests     []string `json:"interests,omitempty"`
}

// Package fixtures is an in-memory EcoLearn backend seeded with demo data. It serves the
// domain service interfaces in-process and backs the development REST server.
package fixtures

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Footprint model of a learning session.
const (
	carbonPerHour    = 0.05      // kg CO2 per hour
	carbonPerMB      = 0.0000004 // kg CO2 per MB transferred
	treesPerKgCarbon = 0.046
)

type account struct {
	user         models.User
	passwordHash string
}

// Store holds all fixture data. It is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	now         func() time.Time
	paths       []models.LearningPath
	lessons     map[string]models.PathDetail
	history     []models.PlantationRecord
	metrics     models.CarbonMetrics
	timeline    models.CarbonTimeline
	accounts    map[string]account // keyed by lower-cased email
	sessionKg   float64
	nextProject int
	states      StateStore // nil keeps everything in memory
}

// NewStore creates a Store seeded with the demo data and the demo account.
func NewStore() (*Store, error) {
	s := &Store{
		now:      time.Now,
		paths:    seedPaths(),
		lessons:  seedLessons(),
		history:  seedHistory(),
		metrics:  seedMetrics(),
		timeline: seedTimeline(),
		accounts: make(map[string]account),
	}
	if _, err := s.register(DemoUserID, DemoName, DemoEmail, DemoPassword); err != nil {
		return nil, fmt.Errorf("failed to seed demo account: %w", err)
	}
	return s, nil
}

// Register creates an account, hashing the password.
func (s *Store) Register(name, email, password string) (models.User, error) {
	return s.register(uuid.New().String(), name, email, password)
}

func (s *Store) register(id, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	key := accountKey(email)
	if name == "" || key == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[key]; exists {
		return models.User{}, ErrEmailTaken
	}

	user := models.User{
		ID:        id,
		Name:      name,
		Email:     strings.TrimSpace(email),
		CreatedAt: s.now().UTC(),
	}
	s.accounts[key] = account{user: user, passwordHash: string(hashedPassword)}
	if err := s.persistLocked(); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func accountKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate checks an email/password pair.
func (s *Store) Authenticate(email, password string) (models.User, error) {
	s.mu.Lock()
	acc, ok := s.accounts[accountKey(email)]
	s.mu.Unlock()
	if !ok {
		return models.User{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(password)); err != nil {
		return models.User{}, ErrBadCredentials
	}
	return acc.user, nil
}

// UserByID looks up an account by user id.
func (s *Store) UserByID(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc.user, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// Metrics returns the carbon metrics.
func (s *Store) Metrics() models.CarbonMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// Timeline returns a copy of the dashboard chart series.
func (s *Store) Timeline() models.CarbonTimeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CarbonTimeline{
		Carbon: append([]models.CarbonPoint(nil), s.timeline.Carbon...),
		Trees:  append([]models.TreesPoint(nil), s.timeline.Trees...),
	}
}

// History returns the plantation history, most recent first.
func (s *Store) History() []models.PlantationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PlantationRecord(nil), s.history...)
}

// CalculateCarbon computes the footprint of a session and adds it to the running total.
func (s *Store) CalculateCarbon(session models.SessionData) (models.CarbonCalculation, error) {
	if session.DurationHours < 0 || session.DataUsedMB < 0 {
		return models.CarbonCalculation{}, fmt.Errorf("%w: duration and data must not be negative", ErrInvalidInput)
	}

	sessionKg := SessionCarbon(session)

	s.mu.Lock()
	s.sessionKg += sessionKg
	total := round(s.sessionKg, 3)
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return models.CarbonCalculation{}, err
	}

	return models.CarbonCalculation{
		SessionCarbon: sessionKg,
		TotalCarbon:   total,
		TreesNeeded:   TreesFor(total),
	}, nil
}

// Offset plants enough trees to offset amount kg of CO2. The new record starts InProgress
// until the planting partner confirms it.
func (s *Store) Offset(amount float64) (models.OffsetResult, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.OffsetResult{}, fmt.Errorf("%w: amount must be a positive number of kg", ErrInvalidInput)
	}

	trees := TreesFor(amount)
	if trees < 1 {
		trees = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := models.PlantationRecord{
		ID:           uuid.New().String(),
		Date:         s.now().Format("2006-01-02"),
		Trees:        trees,
		CarbonOffset: round(amount, 2),
		Location:     projectLocations[s.nextProject%len(projectLocations)],
		Status:       models.StatusInProgress,
	}
	s.nextProject++
	s.history = append([]models.PlantationRecord{record}, s.history...)
	s.metrics.TreesPlanted += trees
	if err := s.persistLocked(); err != nil {
		return models.OffsetResult{}, err
	}

	return models.OffsetResult{Record: record, TotalTrees: s.metrics.TreesPlanted}, nil
}

// ConfirmPlantings marks every InProgress record as Planted and returns how many changed.
func (s *Store) ConfirmPlantings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	confirmed := 0
	for i := range s.history {
		if s.history[i].Status == models.StatusInProgress {
			s.history[i].Status = models.StatusPlanted
			confirmed++
		}
	}
	if confirmed > 0 {
		if err := s.persistLocked(); err != nil {
			log.Error().Err(err).Int("confirmed", confirmed).Msg("Failed to save confirmed plantings")
		}
	}
	return confirmed
}

// Paths returns the user's learning paths.
func (s *Store) Paths() []models.LearningPath {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.LearningPath(nil), s.paths...)
}

// Path returns a learning path with its sections.
func (s *Store) Path(id string) (models.PathDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if detail, ok := s.lessons[id]; ok {
		detail.Sections = append([]models.LessonSection(nil), detail.Sections...)
		return detail, nil
	}
	i := s.indexOf(id)
	if i < 0 {
		return models.PathDetail{}, fmt.Errorf("path %s: %w", id, ErrNotFound)
	}
	return outline(s.paths[i]), nil
}

// GeneratePath adds a new path on topic at level.
func (s *Store) GeneratePath(topic, level string) (models.LearningPath, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.LearningPath{}, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	duration, ok := levelDuration(level)
	if !ok {
		return models.LearningPath{}, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, level)
	}

	path := models.LearningPath{
		ID:          uuid.New().String(),
		Title:       topic,
		Description: fmt.Sprintf("A %s path about %s", level, strings.ToLower(topic)),
		Icon:        "🌱",
		Level:       level,
		Duration:    duration,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	if err := s.persistLocked(); err != nil {
		return models.LearningPath{}, err
	}
	return path, nil
}

// PersonalizePath adjusts an existing path to the learner's preferences.
func (s *Store) PersonalizePath(id string, prefs models.PathPreferences) (models.LearningPath, error) {
	var duration int
	if prefs.Level != "" {
		d, ok := levelDuration(prefs.Level)
		if !ok {
			return models.LearningPath{}, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, prefs.Level)
		}
		duration = d
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.LearningPath{}, fmt.Errorf("path %s: %w", id, ErrNotFound)
	}

	path := &s.paths[i]
	if prefs.Level != "" {
		path.Level = prefs.Level
		path.Duration = duration
	}
	if prefs.LearningStyle != "" || len(prefs.Interests) > 0 {
		base, _, _ := strings.Cut(path.Description, " (")
		var focus []string
		if prefs.LearningStyle != "" {
			focus = append(focus, prefs.LearningStyle+" style")
		}
		focus = append(focus, prefs.Interests...)
		path.Description = base + " (" + strings.Join(focus, ", ") + ")"
	}
	if err := s.persistLocked(); err != nil {
		return models.LearningPath{}, err
	}
	return *path, nil
}

func (s *Store) indexOf(id string) int {
	for i, p := range s.paths {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// SessionCarbon is the footprint in kg of one learning session, rounded to grams.
func SessionCarbon(session models.SessionData) float64 {
	kg := session.DurationHours*carbonPerHour + session.DataUsedMB*carbonPerMB
	kg *= deviceFactor(session.DeviceType)
	kg *= energyFactor(session.EnergySource)
	return round(kg, 3)
}

// TreesFor is the number of trees needed to offset kg of CO2.
func TreesFor(kg float64) int {
	return int(math.Ceil(kg * treesPerKgCarbon))
}

func deviceFactor(device string) float64 {
	switch strings.ToLower(device) {
	case "mobile":
		return 0.8
	case "tablet":
		return 0.9
	case "desktop":
		return 1.2
	default:
		return 1.0
	}
}

func energyFactor(source string) float64 {
	switch strings.ToLower(source) {
	case "renewable":
		return 0.3
	case "fossil":
		return 1.0
	default:
		return 0.7
	}
}

func levelDuration(level string) (int, bool) {
	switch level {
	case models.LevelBeginner:
		return 30, true
	case models.LevelIntermediate:
		return 45, true
	case models.LevelAdvanced:
		return 60, true
	default:
		return 0, false
	}
}

func outline(p models.LearningPath) models.PathDetail {
	sections := []models.LessonSection{
		{
			Title:        "Why " + strings.ToLower(p.Title) + " matters",
			Content:      p.Description + ". This section explains where the emissions come from and how much they weigh.",
			CarbonImpact: 0.3,
		},
		{
			Title:        "Key practices",
			Content:      "The habits and techniques that make the biggest difference, with concrete examples.",
			CarbonImpact: 0.4,
		},
		{
			Title:        "Putting it into action",
			Content:      "A short plan to apply what you learned this week and measure the carbon you save.",
			CarbonImpact: 0.5,
		},
	}
	completed := len(sections) * p.Progress / 100
	return models.PathDetail{
		ID:                p.ID,
		Title:             p.Title,
		Sections:          sections,
		TotalSections:     len(sections),
		CompletedSections: completed,
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

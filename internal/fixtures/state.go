package fixtures

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/isdelr/ecolearn/internal/models"
)

// StateStore is durable storage for the mutable part of a Store.
type StateStore interface {
	LoadState() ([]byte, error) // nil when nothing is stored
	SaveState(data []byte) error
}

type accountState struct {
	User         models.User `json:"user"`
	PasswordHash string      `json:"passwordHash"`
}

// state is everything a Store changes after seeding. Lessons are static and not kept.
type state struct {
	Accounts    []accountState            `json:"accounts"`
	Paths       []models.LearningPath     `json:"paths"`
	History     []models.PlantationRecord `json:"history"`
	Metrics     models.CarbonMetrics      `json:"metrics"`
	Timeline    models.CarbonTimeline     `json:"timeline"`
	SessionKg   float64                   `json:"sessionKg"`
	NextProject int                       `json:"nextProject"`
}

// NewPersistentStore creates a Store that starts from the data kept in states, or from the
// seed data when there is none, and writes every change back.
func NewPersistentStore(states StateStore) (*Store, error) {
	s, err := NewStore()
	if err != nil {
		return nil, err
	}
	data, err := states.LoadState()
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if data != nil {
		var st state
		if err := json.Unmarshal(data, &st); err != nil {
			return nil, fmt.Errorf("failed to decode fixture state: %w", err)
		}
		s.restoreLocked(st)
	}
	s.states = states
	return s, nil
}

func (s *Store) restoreLocked(st state) {
	s.accounts = make(map[string]account, len(st.Accounts))
	for _, acc := range st.Accounts {
		s.accounts[accountKey(acc.User.Email)] = account{user: acc.User, passwordHash: acc.PasswordHash}
	}
	s.paths = st.Paths
	s.history = st.History
	s.metrics = st.Metrics
	s.timeline = st.Timeline
	s.sessionKg = st.SessionKg
	s.nextProject = st.NextProject
}

// persistLocked writes the current data to the state store, if there is one.
func (s *Store) persistLocked() error {
	if s.states == nil {
		return nil
	}
	st := state{
		Paths:       s.paths,
		History:     s.history,
		Metrics:     s.metrics,
		Timeline:    s.timeline,
		SessionKg:   s.sessionKg,
		NextProject: s.nextProject,
	}
	for _, acc := range s.accounts {
		st.Accounts = append(st.Accounts, accountState{User: acc.user, PasswordHash: acc.passwordHash})
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode fixture state: %w", err)
	}
	if err := s.states.SaveState(data); err != nil {
		return fmt.Errorf("failed to save fixture state: %w", err)
	}
	return nil
}

// SQLiteState keeps one fixture state document per profile in the fixture_state table.
type SQLiteState struct {
	db      *sql.DB
	profile string
}

// NewSQLiteState creates a state store for profile. The schema must already be migrated.
func NewSQLiteState(db *sql.DB, profile string) *SQLiteState {
	return &SQLiteState{db: db, profile: profile}
}

// LoadState returns the stored document for the profile.
func (s *SQLiteState) LoadState() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT state FROM fixture_state WHERE profile = ?", s.profile).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return data, err
}

// SaveState replaces the profile's document.
func (s *SQLiteState) SaveState(data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO fixture_state (profile, state, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(profile) DO UPDATE SET state = excluded.state, saved_at = excluded.saved_at`,
		s.profile, string(data))
	return err
}

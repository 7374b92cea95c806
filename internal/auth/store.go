package auth

import (
	"database/sql"
	"errors"
	"sync"
)

// TokenStore is durable storage for the session token.
type TokenStore interface {
	Load() (string, error) // "" when nothing is stored
	Save(token string) error
	Clear() error
}

// SQLiteStore keeps one token per profile in the session_tokens table.
type SQLiteStore struct {
	db      *sql.DB
	profile string
}

// NewSQLiteStore creates a store for profile. The schema must already be migrated.
func NewSQLiteStore(db *sql.DB, profile string) *SQLiteStore {
	return &SQLiteStore{db: db, profile: profile}
}

// Load returns the stored token for the profile.
func (s *SQLiteStore) Load() (string, error) {
	var token string
	err := s.db.QueryRow("SELECT token FROM session_tokens WHERE profile = ?", s.profile).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return token, err
}

// Save stores token, replacing any previous one.
func (s *SQLiteStore) Save(token string) error {
	_, err := s.db.Exec(`
		INSERT INTO session_tokens (profile, token, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(profile) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at`,
		s.profile, token)
	return err
}

// Clear removes the profile's token. Clearing an empty store is not an error.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM session_tokens WHERE profile = ?", s.profile)
	return err
}

// MemoryStore is a TokenStore that lives as long as the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates a MemoryStore holding token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

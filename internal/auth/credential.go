package auth

import "sync"

// Credential holds the token the API client attaches to requests. It is shared between
// the client and the Session, which is the only writer.
type Credential struct {
	mu    sync.RWMutex
	token string
}

// NewCredential creates an empty credential.
func NewCredential() *Credential {
	return &Credential{}
}

// Token returns the current token, or "" when signed out.
func (c *Credential) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Credential) set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

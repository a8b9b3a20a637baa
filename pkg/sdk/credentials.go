package sdk

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ErrNotLoggedIn is returned by CredentialStore implementations when no
// credentials are persisted.
var ErrNotLoggedIn = errors.New("not logged in")

// Credentials holds the opaque bearer token issued at login or registration.
// Its presence alone never implies an authenticated session; identity
// resolution must re-run on every process start.
type Credentials struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at,omitempty"`
}

// OAuthToken adapts the stored token for Authorization header injection.
func (c *Credentials) OAuthToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: c.Token, TokenType: "Bearer"}
}

// CredentialStore persists the bearer token across application restarts.
// Exactly one durable token exists at a time. The session manager is the
// only writer; the gateway reads it for header injection.
type CredentialStore interface {
	// Save persists the credentials, replacing any previous ones.
	Save(creds *Credentials) error
	// Load returns the persisted credentials, or ErrNotLoggedIn when
	// nothing is stored.
	Load() (*Credentials, error)
	// Delete removes the persisted credentials. Deleting an empty store
	// is not an error.
	Delete() error
}

// MemoryStore is a process-local CredentialStore. Embedders that have no
// durable storage (and the test suite) use it; the CLI persists to disk
// instead.
type MemoryStore struct {
	mu    sync.Mutex
	creds *Credentials
}

var _ CredentialStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(creds *Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *creds
	s.creds = &copied
	return nil
}

func (s *MemoryStore) Load() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, ErrNotLoggedIn
	}
	copied := *s.creds
	return &copied, nil
}

func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}

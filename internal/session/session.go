// Package session holds the credential pair the API client authenticates with.
package session

import (
	"fmt"
	"sync"

	"github.com/tgienger/yusra/internal/models"
)

// Fixed keys the tokens are persisted under
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

// Store persists string settings across restarts
type Store interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
	// SetSettings stores all pairs or none of them
	SetSettings(values map[string]string) error
	DeleteSetting(key string) error
}

// Session caches the tokens in memory and writes changes through to the store.
// It satisfies api.Credentials.
type Session struct {
	mu      sync.RWMutex
	store   Store
	access  string
	refresh string
}

// Open loads any previously stored tokens
func Open(store Store) (*Session, error) {
	access, err := store.GetSetting(AccessTokenKey)
	if err != nil {
		return nil, fmt.Errorf("load access token: %w", err)
	}
	refresh, err := store.GetSetting(RefreshTokenKey)
	if err != nil {
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	return &Session{store: store, access: access, refresh: refresh}, nil
}

// AccessToken returns the current bearer token, or "" when logged out
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the stored refresh token. Nothing uses it to refresh.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// LoggedIn reports whether an access token is present
func (s *Session) LoggedIn() bool { return s.AccessToken() != "" }

// SetCredential stores a new token pair
func (s *Session) SetCredential(tokens models.Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.store.SetSettings(map[string]string{
		AccessTokenKey:  tokens.AccessToken,
		RefreshTokenKey: tokens.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	s.access = tokens.AccessToken
	s.refresh = tokens.RefreshToken
	return nil
}

// ClearCredential forgets both tokens. The in-memory copy is cleared even
// when the store fails.
func (s *Session) ClearCredential() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	if err := s.store.DeleteSetting(AccessTokenKey); err != nil {
		return fmt.Errorf("clear access token: %w", err)
	}
	if err := s.store.DeleteSetting(RefreshTokenKey); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// MemoryStore is a Store that keeps settings in a map
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) GetSetting(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryStore) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) SetSettings(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryStore) DeleteSetting(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

package session

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"catalyster/internal/domain"
	"catalyster/internal/infra"
)

// persisted mirrors the two durable keys the web client kept: the raw access
// token and the serialized user descriptor. They are written and cleared
// together.
type persisted struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user,omitempty"`
}

// Store holds the current authenticated identity in memory and on disk.
// It implements api.TokenSource so the client can inject the bearer header
// without any global state.
type Store struct {
	path   string
	logger *infra.Logger

	mu    sync.RWMutex
	state persisted
}

// NewStore creates a store backed by the given file and rehydrates any
// previously persisted session. A file that fails to parse is purged and the
// store starts unauthenticated.
func NewStore(path string, logger *infra.Logger) *Store {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	s := &Store{path: path, logger: logger}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("session: read failed, starting unauthenticated")
		}
		return
	}
	var state persisted
	if err := json.Unmarshal(raw, &state); err != nil || state.AccessToken == "" {
		s.logger.Warn().Str("path", s.path).Msg("session: stored session unreadable, purging")
		_ = os.Remove(s.path)
		return
	}
	s.state = state
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

// User returns the stored user descriptor, or nil when unauthenticated.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// Authenticated reports whether a token is present. It does not prove the
// token is still accepted by the backend.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Set persists a new token and user descriptor atomically.
func (s *Store) Set(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = persisted{AccessToken: token, User: user}
	return s.write()
}

// SetToken replaces only the access token, keeping the user descriptor.
// Used by the refresh flow.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = token
	return s.write()
}

// Clear wipes memory and disk state unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = persisted{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn().Err(err).Msg("session: failed to remove session file")
	}
}

// write assumes s.mu is held.
func (s *Store) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// TokenExpiry returns the expiry claim of the stored token. The signature is
// not verified here; only the backend can do that. There is no refresh loop:
// callers that keep going past expiry see a 401.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// TokenExpired reports whether the stored token carries an expiry claim in
// the past.
func (s *Store) TokenExpired() bool {
	expiry, ok := s.TokenExpiry()
	return ok && time.Now().After(expiry)
}

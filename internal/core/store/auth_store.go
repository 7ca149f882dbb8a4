// Package store holds the process-wide state containers of the dashboard:
// the authentication session and the rooming-list board.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
	"github.com/eventops/rooming-dashboard/internal/metrics"
)

// SessionValidator checks a restored token. A nil error keeps the session.
type SessionValidator func(ctx context.Context, token string) error

// AuthOption configures an AuthStore.
type AuthOption func(*AuthStore)

// WithValidator sets the check run by Initialize.
func WithValidator(v SessionValidator) AuthOption {
	return func(s *AuthStore) { s.validate = v }
}

// AuthStore is the single source of truth for who is signed in.
//
// Every mutation persists {token, user, isAuthenticated} before returning.
// Loading is transient and never written to storage.
type AuthStore struct {
	mu            sync.RWMutex
	user          *domain.User
	token         string
	authenticated bool
	loading       bool

	storage  ports.SessionStorage
	validate SessionValidator
	log      zerolog.Logger
}

// NewAuthStore builds a store seeded from storage. A missing, unreadable or
// half-empty snapshot yields a signed-out store.
func NewAuthStore(ctx context.Context, storage ports.SessionStorage, log zerolog.Logger, opts ...AuthOption) *AuthStore {
	s := &AuthStore{storage: storage, log: log}
	for _, opt := range opts {
		opt(s)
	}
	s.restore(ctx)
	return s
}

func (s *AuthStore) restore(ctx context.Context) {
	snap, err := s.storage.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrNoSession):
		return
	case err != nil:
		s.log.Warn().Err(err).Msg("discarding unreadable session snapshot")
		s.removePersisted(ctx)
		return
	case !snap.Valid():
		s.log.Warn().Msg("discarding incomplete session snapshot")
		s.removePersisted(ctx)
		return
	}

	user := *snap.User
	s.user = &user
	s.token = snap.Token
	s.authenticated = true
}

// Login installs a session. The user is not validated, but an empty token
// leaves the store signed out with nothing persisted.
func (s *AuthStore) Login(ctx context.Context, user domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		s.clear(ctx)
		return
	}
	s.user = &user
	s.token = token
	s.authenticated = true
	s.loading = false
	s.persist(ctx)
}

// Logout clears the session and its persisted snapshot. It never fails.
func (s *AuthStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear(ctx)
	metrics.SessionTerminationsTotal.WithLabelValues("logout").Inc()
}

// EndSession logs out only when token is still the active token. It reports
// whether a session was actually ended, so a burst of 401s for one token
// ends the session exactly once.
func (s *AuthStore) EndSession(ctx context.Context, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || token != s.token {
		return false
	}
	s.clear(ctx)
	metrics.SessionTerminationsTotal.WithLabelValues("unauthorized").Inc()
	s.log.Info().Msg("session ended by server")
	return true
}

// UpdateUser merges the set fields of patch into the current user.
// Without a signed-in user it does nothing.
func (s *AuthStore) UpdateUser(ctx context.Context, patch domain.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	u := *s.user
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.UpdatedAt != nil {
		u.UpdatedAt = *patch.UpdatedAt
	}
	s.user = &u
	s.persist(ctx)
}

func (s *AuthStore) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// Initialize validates a restored token. On failure the session is ended.
// Loading is set for the duration and always cleared on return.
func (s *AuthStore) Initialize(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return nil
	}

	s.SetLoading(true)
	defer s.SetLoading(false)

	if s.validate == nil {
		return nil
	}
	if err := s.validate(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("restored session rejected")
		s.mu.Lock()
		s.clear(ctx)
		s.mu.Unlock()
		metrics.SessionTerminationsTotal.WithLabelValues("validation_failed").Inc()
		return err
	}
	return nil
}

func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *AuthStore) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *AuthStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Snapshot returns a consistent copy of the whole state.
func (s *AuthStore) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := domain.Session{
		Token:           s.token,
		IsAuthenticated: s.authenticated,
		IsLoading:       s.loading,
	}
	if s.user != nil {
		u := *s.user
		out.User = &u
	}
	return out
}

// clear must be called with mu held.
func (s *AuthStore) clear(ctx context.Context) {
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.loading = false
	s.removePersisted(ctx)
}

// persist must be called with mu held. Storage writes outlive a canceled
// request so the snapshot never lags the in-memory session.
func (s *AuthStore) persist(ctx context.Context) {
	snap := domain.PersistedSession{
		Token:           s.token,
		User:            s.user,
		IsAuthenticated: s.authenticated,
	}
	if err := s.storage.Save(context.WithoutCancel(ctx), snap); err != nil {
		s.log.Error().Err(err).Msg("failed to persist session")
	}
}

func (s *AuthStore) removePersisted(ctx context.Context) {
	if err := s.storage.Remove(context.WithoutCancel(ctx)); err != nil {
		s.log.Error().Err(err).Msg("failed to remove persisted session")
	}
}

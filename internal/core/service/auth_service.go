package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
	"github.com/eventops/rooming-dashboard/internal/pkg/validate"
)

// SessionWriter is the part of the auth store the auth service drives.
type SessionWriter interface {
	Login(ctx context.Context, user domain.User, token string)
	Logout(ctx context.Context)
	SetLoading(loading bool)
	User() *domain.User
}

type authService struct {
	api     Transport
	session SessionWriter
	log     zerolog.Logger

	mu      sync.Mutex
	refresh string
}

// NewAuthService returns an AuthService that records sessions in session.
// The refresh token lives in memory only.
func NewAuthService(api Transport, session SessionWriter, log zerolog.Logger) ports.AuthService {
	return &authService{api: api, session: session, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.NormalizedUser, error) {
	req := domain.LoginRequest{Email: email, Password: password}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	s.session.SetLoading(true)
	defer s.session.SetLoading(false)

	var resp domain.LoginResponse
	if err := s.api.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.refresh = resp.RefreshToken
	s.mu.Unlock()

	s.session.Login(ctx, resp.User, resp.Token)
	s.log.Info().Str("user_id", resp.User.ID).Msg("signed in")

	n := NormalizeUser(resp.User)
	return &n, nil
}

// Refresh trades the refresh token from the last login for a new pair,
// keeping the signed-in user.
func (s *authService) Refresh(ctx context.Context) error {
	user := s.session.User()
	s.mu.Lock()
	refresh := s.refresh
	s.mu.Unlock()
	if user == nil || refresh == "" {
		return domain.ErrSessionExpired
	}

	var resp domain.RefreshResponse
	if err := s.api.Post(ctx, "/auth/refresh", domain.RefreshRequest{RefreshToken: refresh}, &resp); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	s.mu.Lock()
	s.refresh = resp.RefreshToken
	s.mu.Unlock()

	s.session.Login(ctx, *user, resp.Token)
	return nil
}

// Logout tells the server, then clears the local session whatever the outcome.
func (s *authService) Logout(ctx context.Context) {
	if err := s.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
		s.log.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
	}

	s.mu.Lock()
	s.refresh = ""
	s.mu.Unlock()

	s.session.Logout(ctx)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
)

const refreshTTLFactor = 7

// AuthService issues access and refresh tokens for the mock API.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// Login checks the credentials and returns a token pair for the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	userID, hash, err := s.repo.Credentials(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	access, refresh, err := s.tokenPair(user)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{User: *user, Token: access, RefreshToken: refresh}, nil
}

// Refresh issues a new token pair for the owner of a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.RefreshResponse, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid || claims["use"] != "refresh" {
		return nil, domain.ErrInvalidToken
	}
	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	access, refresh, err := s.tokenPair(user)
	if err != nil {
		return nil, err
	}
	return &domain.RefreshResponse{Token: access, RefreshToken: refresh}, nil
}

// HashPassword is used when accounts are created through the API.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) tokenPair(user *domain.User) (string, string, error) {
	access, err := s.generateToken(user, "access", s.tokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.generateToken(user, "refresh", s.tokenTTL*refreshTTLFactor)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) generateToken(user *domain.User, use string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"use":   use,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

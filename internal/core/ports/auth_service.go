package ports

import (
	"context"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.NormalizedUser, error)
	Refresh(ctx context.Context) error
	Logout(ctx context.Context)
}

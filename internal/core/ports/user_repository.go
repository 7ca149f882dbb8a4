package ports

import (
	"context"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// UserFilter selects users for a list page. Page is 1-based.
type UserFilter struct {
	Search string
	Role   domain.UserRole
	Page   int
	Limit  int
}

// UserRepository is the storage behind the mock REST API.
type UserRepository interface {
	List(ctx context.Context, f UserFilter) ([]domain.User, int, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user domain.User, passwordHash string) (*domain.User, error)
	Update(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	// Credentials resolves a login email to the account it signs in as.
	Credentials(ctx context.Context, email string) (userID, passwordHash string, err error)
}

package ports

import (
	"context"
	"io"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// UserService wraps the /users endpoints and normalises every result.
type UserService interface {
	GetAll(ctx context.Context, params domain.ListUsersParams) (*domain.UsersPage, error)
	GetByID(ctx context.Context, id string) (*domain.NormalizedUser, error)
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.NormalizedUser, error)
	Update(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.NormalizedUser, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) error
	UploadAvatar(ctx context.Context, id, filename string, r io.Reader) (*domain.NormalizedUser, error)
}

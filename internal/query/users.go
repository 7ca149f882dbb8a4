package query

import (
	"context"
	"io"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
)

// Users exposes cached user reads and cache-aware user mutations.
type Users struct {
	qc  *Client
	svc ports.UserService
}

func NewUsers(qc *Client, svc ports.UserService) *Users {
	return &Users{qc: qc, svc: svc}
}

func (u *Users) List(ctx context.Context, params domain.ListUsersParams) (*domain.UsersPage, error) {
	return Fetch(ctx, u.qc, UserKeys.List(params), func(ctx context.Context) (*domain.UsersPage, error) {
		return u.svc.GetAll(ctx, params)
	})
}

// Get is disabled for an empty id: it fails without issuing a request.
func (u *Users) Get(ctx context.Context, id string) (*domain.NormalizedUser, error) {
	if id == "" {
		return nil, domain.ErrEmptyUserID
	}
	return Fetch(ctx, u.qc, UserKeys.Detail(id), func(ctx context.Context) (*domain.NormalizedUser, error) {
		return u.svc.GetByID(ctx, id)
	})
}

func (u *Users) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.NormalizedUser, error) {
	return Mutate(ctx, func(ctx context.Context) (*domain.NormalizedUser, error) {
		return u.svc.Create(ctx, req)
	}, func(*domain.NormalizedUser) {
		u.qc.Invalidate(UserKeys.Lists())
	})
}

func (u *Users) Update(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.NormalizedUser, error) {
	return Mutate(ctx, func(ctx context.Context) (*domain.NormalizedUser, error) {
		return u.svc.Update(ctx, id, req)
	}, u.afterUserChange(id))
}

func (u *Users) UploadAvatar(ctx context.Context, id, filename string, r io.Reader) (*domain.NormalizedUser, error) {
	return Mutate(ctx, func(ctx context.Context) (*domain.NormalizedUser, error) {
		return u.svc.UploadAvatar(ctx, id, filename, r)
	}, u.afterUserChange(id))
}

func (u *Users) Delete(ctx context.Context, id string) error {
	_, err := Mutate(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, u.svc.Delete(ctx, id)
	}, func(struct{}) {
		u.qc.Invalidate(UserKeys.Lists())
		u.qc.Remove(UserKeys.Detail(id))
	})
	return err
}

func (u *Users) BulkDelete(ctx context.Context, ids []string) error {
	_, err := Mutate(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, u.svc.BulkDelete(ctx, ids)
	}, func(struct{}) {
		u.qc.Invalidate(UserKeys.Lists())
		for _, id := range ids {
			u.qc.Remove(UserKeys.Detail(id))
		}
	})
	return err
}

// afterUserChange refreshes lists and seeds the detail entry with the server's copy.
func (u *Users) afterUserChange(id string) func(*domain.NormalizedUser) {
	return func(user *domain.NormalizedUser) {
		u.qc.Invalidate(UserKeys.Lists())
		u.qc.SetQueryData(UserKeys.Detail(id), user)
	}
}

package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
	"github.com/eventops/rooming-dashboard/internal/pkg/validate"
)

// Transport is the subset of the API client used by the services.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	PostMultipart(ctx context.Context, path, field, filename string, r io.Reader, out any) error
}

type userService struct {
	api Transport
	log zerolog.Logger
}

// NewUserService returns a UserService over api.
func NewUserService(api Transport, log zerolog.Logger) ports.UserService {
	return &userService{api: api, log: log}
}

func (s *userService) GetAll(ctx context.Context, params domain.ListUsersParams) (*domain.UsersPage, error) {
	var resp domain.UsersResponse
	if err := s.api.Get(ctx, "/users", listQuery(params), &resp); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &domain.UsersPage{
		Users: NormalizeUsers(resp.Users),
		Total: resp.Total,
		Page:  resp.Page,
		Limit: resp.Limit,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.NormalizedUser, error) {
	var u domain.User
	if err := s.api.Get(ctx, userPath(id), nil, &u); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	n := NormalizeUser(u)
	return &n, nil
}

// Create validates req locally before sending it.
func (s *userService) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.NormalizedUser, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var u domain.User
	if err := s.api.Post(ctx, "/users", req, &u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info().Str("user_id", u.ID).Msg("user created")
	n := NormalizeUser(u)
	return &n, nil
}

func (s *userService) Update(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.NormalizedUser, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var u domain.User
	if err := s.api.Put(ctx, userPath(id), req, &u); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	n := NormalizeUser(u)
	return &n, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, userPath(id), nil); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *userService) BulkDelete(ctx context.Context, ids []string) error {
	req := domain.BulkDeleteRequest{IDs: ids}
	if err := validate.Struct(req); err != nil {
		return err
	}
	var resp domain.BulkDeleteResponse
	if err := s.api.Post(ctx, "/users/bulk-delete", req, &resp); err != nil {
		return fmt.Errorf("bulk delete users: %w", err)
	}
	s.log.Info().Int("requested", len(ids)).Int("deleted", resp.Deleted).Msg("users deleted")
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, id, filename string, r io.Reader) (*domain.NormalizedUser, error) {
	var u domain.User
	if err := s.api.PostMultipart(ctx, userPath(id)+"/avatar", "avatar", filename, r, &u); err != nil {
		return nil, fmt.Errorf("upload avatar for %s: %w", id, err)
	}
	n := NormalizeUser(u)
	return &n, nil
}

func userPath(id string) string {
	return "/users/" + url.PathEscape(id)
}

func listQuery(p domain.ListUsersParams) url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Role != "" {
		q.Set("role", string(p.Role))
	}
	return q
}

// Package repository keeps the mock API's users in memory.
package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type credential struct {
	userID string
	hash   string
}

// UserRepository is a concurrency-safe, insertion-ordered user table.
type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
	creds map[string]credential
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		creds: make(map[string]credential),
		now:   time.Now,
	}
}

// Seed installs users as-is, keeping their ids and timestamps.
func (r *UserRepository) Seed(users ...domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, users...)
}

// AddCredential lets email sign in as userID.
func (r *UserRepository) AddCredential(email, userID, passwordHash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creds[strings.ToLower(email)] = credential{userID: userID, hash: passwordHash}
}

func (r *UserRepository) List(_ context.Context, f ports.UserFilter) ([]domain.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(f.Search)
	matched := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		matched = append(matched, u)
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []domain.User{}, len(matched), nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return append([]domain.User(nil), matched[start:end]...), len(matched), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		u := r.users[i]
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create assigns an id and timestamps. New accounts are active.
func (r *UserRepository) Create(_ context.Context, user domain.User, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrUserExists
		}
	}

	ts := r.timestamp()
	user.ID = uuid.NewString()
	user.IsActive = true
	user.CreatedAt = ts
	user.UpdatedAt = ts
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	r.users = append(r.users, user)
	if passwordHash != "" {
		r.creds[strings.ToLower(user.Email)] = credential{userID: user.ID, hash: passwordHash}
	}
	return &user, nil
}

func (r *UserRepository) Update(_ context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := r.users[i]
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Avatar != nil {
		u.Avatar = *req.Avatar
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	u.UpdatedAt = r.timestamp()
	r.users[i] = u
	return &u, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrUserNotFound
	}
	r.dropCredentials(id)
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

// DeleteMany removes every listed user that exists and reports how many went.
func (r *UserRepository) DeleteMany(_ context.Context, ids []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := r.users[:0]
	deleted := 0
	for _, u := range r.users {
		if _, ok := drop[u.ID]; ok {
			r.dropCredentials(u.ID)
			deleted++
			continue
		}
		kept = append(kept, u)
	}
	r.users = kept
	return deleted, nil
}

func (r *UserRepository) Credentials(_ context.Context, email string) (string, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.creds[strings.ToLower(email)]
	if !ok {
		return "", "", domain.ErrUserNotFound
	}
	return c.userID, c.hash, nil
}

func (r *UserRepository) indexOf(id string) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (r *UserRepository) dropCredentials(userID string) {
	for email, c := range r.creds {
		if c.userID == userID {
			delete(r.creds, email)
		}
	}
}

func (r *UserRepository) timestamp() string {
	return r.now().UTC().Format(time.RFC3339Nano)
}

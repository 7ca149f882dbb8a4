package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
)

func seeded() *UserRepository {
	r := NewUserRepository()
	r.Seed(SeedUsers()...)
	return r
}

func TestList_SearchIsCaseInsensitiveAcrossNameAndEmail(t *testing.T) {
	r := seeded()
	ctx := context.Background()

	users, total, err := r.List(ctx, ports.UserFilter{Search: "SMITH"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "2", users[0].ID)

	users, total, err = r.List(ctx, ports.UserFilter{Search: "john.doe@"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "1", users[0].ID)
}

func TestList_Pagination(t *testing.T) {
	r := seeded()

	users, total, err := r.List(context.Background(), ports.UserFilter{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, users, 1)
	assert.Equal(t, "2", users[0].ID)

	users, _, err = r.List(context.Background(), ports.UserFilter{Page: 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestList_RoleFilter(t *testing.T) {
	users, total, err := seeded().List(context.Background(), ports.UserFilter{Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "John", users[0].FirstName)
}

func TestCreate_AssignsIDAndRejectsDuplicates(t *testing.T) {
	r := seeded()
	ctx := context.Background()

	u, err := r.Create(ctx, domain.User{Email: "new@example.com", FirstName: "New", LastName: "User"}, "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.IsActive)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEmpty(t, u.CreatedAt)

	id, hash, err := r.Credentials(ctx, "NEW@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "hash", hash)

	_, err = r.Create(ctx, domain.User{Email: "new@example.com"}, "")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUpdate_MergesAndStamps(t *testing.T) {
	r := seeded()
	name := "Janet"

	u, err := r.Update(context.Background(), "2", domain.UpdateUserRequest{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Janet", u.FirstName)
	assert.Equal(t, "Smith", u.LastName)
	assert.NotEqual(t, "2023-01-02T00:00:00Z", u.UpdatedAt)

	_, err = r.Update(context.Background(), "404", domain.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteMany(t *testing.T) {
	r := seeded()
	r.AddCredential(DemoEmail, "1", "hash")

	n, err := r.DeleteMany(context.Background(), []string{"1", "404"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = r.FindByID(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, _, err = r.Credentials(context.Background(), DemoEmail)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

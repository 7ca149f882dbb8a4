package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStorage_RoundTrip(t *testing.T) {
	mr, client := setupTestRedis(t)
	storage := NewSessionStorage(client, "dashboard", 0)
	ctx := context.Background()

	_, err := storage.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrNoSession)

	user := domain.User{ID: "1", FirstName: "John"}
	require.NoError(t, storage.Save(ctx, domain.PersistedSession{Token: "tkn", User: &user, IsAuthenticated: true}))
	assert.True(t, mr.Exists("dashboard:auth-storage"))

	snap, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Valid())
	assert.Equal(t, "John", snap.User.FirstName)

	require.NoError(t, storage.Remove(ctx))
	assert.False(t, mr.Exists("dashboard:auth-storage"))
}

func TestSessionStorage_StoredShapeHasNoLoadingFlag(t *testing.T) {
	mr, client := setupTestRedis(t)
	storage := NewSessionStorage(client, "", 0)

	require.NoError(t, storage.Save(context.Background(), domain.PersistedSession{Token: "tkn", IsAuthenticated: true}))

	raw, err := mr.Get(domain.SessionStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"tkn","user":null,"isAuthenticated":true}`, raw)
}

func TestSessionStorage_TTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	storage := NewSessionStorage(client, "", time.Hour)

	require.NoError(t, storage.Save(context.Background(), domain.PersistedSession{Token: "tkn"}))
	mr.FastForward(2 * time.Hour)

	_, err := storage.Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoSession)
}

func TestSessionStorage_CorruptValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set(domain.SessionStorageKey, "{not json"))

	_, err := NewSessionStorage(client, "", 0).Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNoSession)
}

func TestConnect(t *testing.T) {
	mr, _ := setupTestRedis(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

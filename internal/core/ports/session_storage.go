package ports

import (
	"context"
	"errors"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// ErrNoSession is returned by SessionStorage.Load when nothing is persisted.
var ErrNoSession = errors.New("no persisted session")

// SessionStorage persists the auth snapshot across process restarts.
type SessionStorage interface {
	Load(ctx context.Context) (domain.PersistedSession, error)
	Save(ctx context.Context, s domain.PersistedSession) error
	Remove(ctx context.Context) error
}

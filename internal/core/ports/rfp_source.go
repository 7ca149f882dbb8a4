package ports

import (
	"context"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// RFPSource yields the full set of rooming lists shown on the dashboard.
type RFPSource interface {
	Load(ctx context.Context) ([]domain.RFP, error)
}

// Package fixtures provides the rooming lists shown on the dashboard.
package fixtures

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
)

//go:embed rfps.json
var embeddedRFPs []byte

type jsonSource struct {
	read func() ([]byte, error)
	name string
}

// Embedded returns the built-in demo data set.
func Embedded() ports.RFPSource {
	return &jsonSource{
		read: func() ([]byte, error) { return embeddedRFPs, nil },
		name: "embedded",
	}
}

// File reads a JSON array of rooming lists from path on every Load.
func File(path string) ports.RFPSource {
	return &jsonSource{
		read: func() ([]byte, error) { return os.ReadFile(path) },
		name: path,
	}
}

func (s *jsonSource) Load(ctx context.Context) ([]domain.RFP, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("read rfps from %s: %w", s.name, err)
	}
	var rfps []domain.RFP
	if err := json.Unmarshal(raw, &rfps); err != nil {
		return nil, fmt.Errorf("decode rfps from %s: %w", s.name, err)
	}
	return rfps, nil
}

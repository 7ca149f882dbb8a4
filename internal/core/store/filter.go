package store

import (
	"strings"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// FilterRFPs returns, in input order, the records matching f. It never
// mutates rfps and always returns a new slice.
//
// A record matches when the search text is empty or occurs in its name or
// agreement type (case-insensitive), and the status set is empty or contains
// its status exactly.
func FilterRFPs(rfps []domain.RFP, f domain.FilterState) []domain.RFP {
	search := strings.ToLower(f.Search)
	out := make([]domain.RFP, 0, len(rfps))
	for _, r := range rfps {
		if !matchesSearch(r, search) {
			continue
		}
		if len(f.Status) > 0 && !f.HasStatus(r.Status) {
			continue
		}
		out = append(out, cloneRFP(r))
	}
	return out
}

func matchesSearch(r domain.RFP, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), lowered) ||
		strings.Contains(strings.ToLower(r.AgreementType), lowered)
}

func cloneRFP(r domain.RFP) domain.RFP {
	if r.Bookings != nil {
		r.Bookings = append([]domain.Booking(nil), r.Bookings...)
	}
	return r
}

func cloneRFPs(rfps []domain.RFP) []domain.RFP {
	if rfps == nil {
		return []domain.RFP{}
	}
	out := make([]domain.RFP, len(rfps))
	for i, r := range rfps {
		out[i] = cloneRFP(r)
	}
	return out
}

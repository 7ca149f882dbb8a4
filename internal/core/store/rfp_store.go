package store

import (
	"sync"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// RFPStore holds the rooming lists and the dashboard filters.
// The filtered view is derived on demand and memoised until either input changes.
type RFPStore struct {
	mu      sync.Mutex
	rfps    []domain.RFP
	filters domain.FilterState

	rev      uint64
	memoRev  uint64
	memo     []domain.RFP
	memoFull bool
}

func NewRFPStore() *RFPStore {
	return &RFPStore{}
}

// SetRFPs replaces every record. Filters are left as they are.
func (s *RFPStore) SetRFPs(rfps []domain.RFP) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rfps = cloneRFPs(rfps)
	s.rev++
}

func (s *RFPStore) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Search = search
	s.rev++
}

// SetStatusFilter replaces the selected statuses. An empty set selects all.
func (s *RFPStore) SetStatusFilter(statuses []domain.RFPStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Status = append([]domain.RFPStatus(nil), statuses...)
	s.rev++
}

// ToggleStatus adds status to the selection, or removes it if already selected.
func (s *RFPStore) ToggleStatus(status domain.RFPStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.RFPStatus, 0, len(s.filters.Status)+1)
	removed := false
	for _, v := range s.filters.Status {
		if v == status {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		next = append(next, status)
	}
	s.filters.Status = next
	s.rev++
}

// GetFilteredRFPs returns the records passing the current filters.
func (s *RFPStore) GetFilteredRFPs() []domain.RFP {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.memoFull || s.memoRev != s.rev {
		s.memo = FilterRFPs(s.rfps, s.filters)
		s.memoRev = s.rev
		s.memoFull = true
	}
	return cloneRFPs(s.memo)
}

func (s *RFPStore) RFPs() []domain.RFP {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRFPs(s.rfps)
}

func (s *RFPStore) Filters() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.FilterState{
		Search: s.filters.Search,
		Status: append([]domain.RFPStatus(nil), s.filters.Status...),
	}
}

// EventNames returns each distinct event name once, in first-seen order.
func (s *RFPStore) EventNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.rfps))
	names := make([]string, 0, len(s.rfps))
	for _, r := range s.rfps {
		if _, ok := seen[r.EventName]; ok {
			continue
		}
		seen[r.EventName] = struct{}{}
		names = append(names, r.EventName)
	}
	return names
}

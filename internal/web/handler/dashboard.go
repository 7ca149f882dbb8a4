package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/store"
	"github.com/eventops/rooming-dashboard/internal/web/view"
)

type DashboardHandler struct {
	Base
	rfps *store.RFPStore
}

func NewDashboardHandler(b Base, rfps *store.RFPStore) *DashboardHandler {
	return &DashboardHandler{Base: b, rfps: rfps}
}

// Board renders the rooming list cards.
//
// Query parameters drive the filter store: search replaces the search text,
// filter=1 replaces the status set with the submitted status values, and
// toggle flips a single status.
func (h *DashboardHandler) Board(c echo.Context) error {
	q := c.QueryParams()
	if _, ok := q["search"]; ok {
		h.rfps.SetSearch(q.Get("search"))
	}
	if q.Get("filter") == "1" {
		statuses := make([]domain.RFPStatus, 0, len(q["status"]))
		for _, s := range q["status"] {
			statuses = append(statuses, domain.RFPStatus(s))
		}
		h.rfps.SetStatusFilter(statuses)
	}
	if t := q.Get("toggle"); t != "" {
		h.rfps.ToggleStatus(domain.RFPStatus(t))
	}

	board := view.NewDashboard(h.rfps.GetFilteredRFPs(), h.rfps.EventNames(), h.rfps.Filters(), len(h.rfps.RFPs()))
	return Render(c, http.StatusOK, "dashboard", h.Page(view.DashboardTitle, "dashboard", board))
}

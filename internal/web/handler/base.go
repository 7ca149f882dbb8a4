package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventops/rooming-dashboard/internal/apiclient"
	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/service"
	"github.com/eventops/rooming-dashboard/internal/metrics"
	"github.com/eventops/rooming-dashboard/internal/pkg/validate"
	"github.com/eventops/rooming-dashboard/internal/web/view"
)

// SessionReader exposes the auth state the layout shows.
type SessionReader interface {
	Snapshot() domain.Session
}

// Base carries what every page handler needs to fill the layout.
type Base struct {
	session SessionReader
	devMode bool
}

func NewBase(session SessionReader, devMode bool) Base {
	return Base{session: session, devMode: devMode}
}

// Page builds the layout data for the current session.
func (b Base) Page(title, active string, data any) view.Page {
	s := b.session.Snapshot()
	p := view.Page{
		Title:   title,
		Active:  active,
		DevMode: b.devMode,
		Data:    data,
		Session: view.Session{Authenticated: s.IsAuthenticated, Loading: s.IsLoading},
	}
	if s.User != nil {
		u := service.NormalizeUser(*s.User)
		p.Session.User = &u
	}
	return p
}

// Render executes a page template and counts it.
func Render(c echo.Context, code int, name string, p view.Page) error {
	metrics.PageRendersTotal.WithLabelValues(name, strconv.Itoa(code)).Inc()
	return c.Render(code, name, p)
}

// Message turns any error into text fit for an inline alert.
func Message(err error) string {
	var ve *validate.Error
	if errors.As(err, &ve) {
		return "Validation failed: " + ve.Error()
	}
	return apiclient.HandleError(err).Message
}

var notices = map[string]string{
	"created": "User created.",
	"updated": "User updated.",
	"deleted": "User deleted.",
	"bulk":    "Selected users deleted.",
	"avatar":  "Avatar uploaded.",
	"profile": "Profile saved.",
}

func notice(c echo.Context) string {
	return notices[c.QueryParam("notice")]
}

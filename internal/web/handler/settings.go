package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/query"
	"github.com/eventops/rooming-dashboard/internal/web/view"
)

// ProfileUpdater merges a saved profile into the signed-in session.
type ProfileUpdater interface {
	UpdateUser(ctx context.Context, patch domain.UserPatch)
}

type SettingsHandler struct {
	Base
	users   *query.Users
	profile ProfileUpdater
	info    view.Settings
}

func NewSettingsHandler(b Base, users *query.Users, profile ProfileUpdater, info view.Settings) *SettingsHandler {
	return &SettingsHandler{Base: b, users: users, profile: profile, info: info}
}

func (h *SettingsHandler) Show(c echo.Context) error {
	p := h.Page("Settings", "settings", h.info)
	p.Notice = notice(c)
	return Render(c, http.StatusOK, "settings", p)
}

// SaveProfile renames the signed-in user and mirrors the change into the session.
func (h *SettingsHandler) SaveProfile(c echo.Context) error {
	s := h.session.Snapshot()
	if s.User == nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	first := strings.TrimSpace(c.FormValue("firstName"))
	last := strings.TrimSpace(c.FormValue("lastName"))
	u, err := h.users.Update(c.Request().Context(), s.User.ID, domain.UpdateUserRequest{FirstName: &first, LastName: &last})
	if err != nil {
		code, ok := inlineStatus(err)
		if !ok {
			return err
		}
		p := h.Page("Settings", "settings", h.info)
		p.Error = Message(err)
		return Render(c, code, "settings", p)
	}

	h.profile.UpdateUser(c.Request().Context(), domain.UserPatch{FirstName: &u.FirstName, LastName: &u.LastName})
	return c.Redirect(http.StatusSeeOther, "/settings?notice=profile")
}

package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventops/rooming-dashboard/internal/core/ports"
	"github.com/eventops/rooming-dashboard/internal/web/view"
)

const msgSessionExpired = "Your session has expired. Please sign in again."

type AuthHandler struct {
	Base
	auth    ports.AuthService
	nav     *LoginNavigator
	prefill view.Login
}

// NewAuthHandler builds the sign-in handler. With demo set the form starts
// filled with the mock API's seeded account.
func NewAuthHandler(b Base, auth ports.AuthService, nav *LoginNavigator, demo bool) *AuthHandler {
	h := &AuthHandler{Base: b, auth: auth, nav: nav}
	if demo {
		h.prefill = view.DemoLogin
	}
	return h
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	if h.session.Snapshot().IsAuthenticated {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	form := h.prefill
	form.Next = safeNext(c.QueryParam("next"))
	p := h.Page("Sign in", "", form)
	if h.nav.TakeExpired() {
		p.Notice = msgSessionExpired
	}
	return Render(c, http.StatusOK, "login", p)
}

func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	next := safeNext(c.FormValue("next"))

	if _, err := h.auth.Login(c.Request().Context(), email, c.FormValue("password")); err != nil {
		p := h.Page("Sign in", "", view.Login{Email: email, Next: next})
		p.Error = Message(err)
		return Render(c, http.StatusUnauthorized, "login", p)
	}
	return c.Redirect(http.StatusSeeOther, next)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.auth.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/login")
}

// safeNext keeps post-login redirects on this host.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/login") {
		return "/dashboard"
	}
	return next
}

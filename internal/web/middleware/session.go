package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Authenticated reports whether an operator is signed in.
type Authenticated interface {
	IsAuthenticated() bool
}

// RequireSession sends anonymous visitors to the login page, remembering
// where they were going.
func RequireSession(session Authenticated) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.IsAuthenticated() {
				target := "/login?next=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// RBAC lets the request through only for the listed roles. It must run after Auth.
func RBAC(allowedRoles ...domain.UserRole) echo.MiddlewareFunc {
	allowed := make(map[domain.UserRole]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(KeyRole).(string)
			if _, ok := allowed[domain.UserRole(role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Access forbidden")
			}
			return next(c)
		}
	}
}

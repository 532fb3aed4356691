package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velora/identity-api/internal/core/domain"
)

// RequirePermission gates a route on the user's current permission label.
// The comparison is exact string equality: "admin" does not satisfy a route
// that requires "user". Must run after Authenticate.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUserKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if user.Permissions != permission {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/velora/identity-api/internal/core/domain"
	"github.com/velora/identity-api/internal/core/ports"
	"github.com/velora/identity-api/internal/core/token"
)

// ContextUserKey is the echo context key under which Authenticate stores
// the resolved *domain.User.
const ContextUserKey = "user"

// Authenticate verifies the bearer token and resolves the live user.
//
// The token's embedded role is never used for authorization: the subject is
// re-fetched from the directory so that accounts deleted or re-roled after
// issuance are seen with their current state. A subject that no longer
// exists fails authentication.
func Authenticate(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				// Malformed, expired, and forged tokens all read the
				// same from the outside.
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

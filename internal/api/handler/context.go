package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velora/identity-api/internal/api/middleware"
	"github.com/velora/identity-api/internal/core/domain"
)

// ctxUser extracts the user resolved by the Authenticate middleware. Its
// presence proves the middleware ran; a handler reaching here without it is
// a routing bug, reported as 401 rather than a panic.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

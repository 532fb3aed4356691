package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velora/identity-api/internal/api/metrics"
	"github.com/velora/identity-api/internal/core/domain"
	"github.com/velora/identity-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	// bcrypt only keys off the first 72 bytes; longer passwords are
	// rejected here rather than silently truncated.
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Permissions string `json:"permissions" validate:"required,oneof=admin user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Permissions string `json:"permissions"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Permissions: u.Permissions,
	}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Permissions)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
			return c.JSON(http.StatusConflict, map[string]string{"error": domain.ErrEmailTaken.Error()})
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrForbidden):
			metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	start := time.Now()
	tok, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrInvalidCredentials.Error()})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: tok})
}

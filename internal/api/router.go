package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/velora/identity-api/docs"
	"github.com/velora/identity-api/internal/api/handler"
	"github.com/velora/identity-api/internal/api/middleware"
	"github.com/velora/identity-api/internal/core/domain"
	"github.com/velora/identity-api/internal/core/password"
	"github.com/velora/identity-api/internal/core/service"
	"github.com/velora/identity-api/internal/core/token"
	"github.com/velora/identity-api/internal/infrastructure/config"
	mongodb "github.com/velora/identity-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, codec *token.Codec, hasher *password.Hasher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, hasher, codec)
	userService := service.NewUserService(userRepo)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	authenticate := middleware.Authenticate(codec, userRepo)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login,
		middleware.LoginRateLimit(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow, log))

	// --- Protected routes ---
	users := e.Group("/users", authenticate)
	users.GET("/me", userHandler.Me)
	users.GET("", userHandler.List, middleware.RequirePermission(domain.PermissionAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

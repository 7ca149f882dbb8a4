// Package mockapi is an in-memory implementation of the dashboard's REST API.
// It backs the end-to-end tests and local demos.
package mockapi

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
	"github.com/eventops/rooming-dashboard/internal/mockapi/handler"
	"github.com/eventops/rooming-dashboard/internal/mockapi/middleware"
	"github.com/eventops/rooming-dashboard/internal/mockapi/repository"
	"github.com/eventops/rooming-dashboard/internal/mockapi/service"
	"github.com/eventops/rooming-dashboard/internal/pkg/echolog"
	"github.com/eventops/rooming-dashboard/internal/pkg/validate"
)

// BasePath prefixes every route.
const BasePath = "/api"

type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewServer returns a mock API seeded with the demo users and the demo login.
func NewServer(opts Options) (*echo.Echo, error) {
	repo := repository.NewUserRepository()
	repo.Seed(repository.SeedUsers()...)

	hash, err := service.HashPassword(repository.DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("seed demo credential: %w", err)
	}
	repo.AddCredential(repository.DemoEmail, "1", hash)

	return NewRouter(repo, opts), nil
}

// NewRouter builds the Echo instance over an existing repository.
func NewRouter(repo ports.UserRepository, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echolog.RequestLogger(opts.Logger))

	// --- Dependencies ---
	authService := service.NewAuthService(repo, opts.JWTSecret, opts.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(repo, service.HashPassword)
	requireAuth := middleware.Auth(opts.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	api := e.Group(BasePath)

	// --- Auth routes ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// --- User routes ---
	users := api.Group("/users", requireAuth)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.POST("/bulk-delete", userHandler.BulkDelete, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)
	users.POST("/:id/avatar", userHandler.UploadAvatar)

	return e
}

// Package web serves the server-rendered dashboard.
package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/eventops/rooming-dashboard/internal/core/ports"
	"github.com/eventops/rooming-dashboard/internal/core/store"
	"github.com/eventops/rooming-dashboard/internal/infrastructure/http/handlers"
	"github.com/eventops/rooming-dashboard/internal/pkg/echolog"
	"github.com/eventops/rooming-dashboard/internal/query"
	"github.com/eventops/rooming-dashboard/internal/web/handler"
	"github.com/eventops/rooming-dashboard/internal/web/middleware"
	"github.com/eventops/rooming-dashboard/internal/web/view"
)

type Deps struct {
	Session   *store.AuthStore
	RFPs      *store.RFPStore
	Users     *query.Users
	Auth      ports.AuthService
	Navigator *handler.LoginNavigator
	Checks    map[string]handlers.Check
	Settings  view.Settings
	DevMode   bool
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all pages registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	base := handler.NewBase(d.Session, d.DevMode)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(base, d.DevMode, d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.RequestID())
	e.Use(echolog.RequestLogger(d.Logger))
	e.Use(middleware.ErrorBoundary(d.Logger))
	e.Use(echomiddleware.Secure())

	// --- Dependencies ---
	dashboardHandler := handler.NewDashboardHandler(base, d.RFPs)
	usersHandler := handler.NewUsersHandler(base, d.Users)
	authHandler := handler.NewAuthHandler(base, d.Auth, d.Navigator, d.Settings.MockAPI)
	settingsHandler := handler.NewSettingsHandler(base, d.Users, d.Session, d.Settings)
	requireSession := middleware.RequireSession(d.Session)

	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	// --- Board ---
	e.GET("/", dashboardHandler.Board)
	e.GET("/dashboard", dashboardHandler.Board)

	// --- Auth ---
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Users ---
	users := e.Group("/users", requireSession)
	users.GET("", usersHandler.List)
	users.POST("", usersHandler.Create)
	users.POST("/bulk-delete", usersHandler.BulkDelete)
	users.GET("/:id", usersHandler.Detail)
	users.POST("/:id", usersHandler.Update)
	users.POST("/:id/delete", usersHandler.Delete)
	users.POST("/:id/avatar", usersHandler.UploadAvatar, echomiddleware.BodyLimit("4M"))

	// --- Settings ---
	settings := e.Group("/settings", requireSession)
	settings.GET("", settingsHandler.Show)
	settings.POST("/profile", settingsHandler.SaveProfile)

	// --- Health checks and metrics ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/")
	})

	return e, nil
}

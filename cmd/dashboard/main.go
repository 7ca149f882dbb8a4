package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventops/rooming-dashboard/internal/apiclient"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
	"github.com/eventops/rooming-dashboard/internal/core/service"
	"github.com/eventops/rooming-dashboard/internal/core/store"
	redisdb "github.com/eventops/rooming-dashboard/internal/infrastructure/db/redis"
	"github.com/eventops/rooming-dashboard/internal/infrastructure/fixtures"
	"github.com/eventops/rooming-dashboard/internal/infrastructure/http/handlers"
	"github.com/eventops/rooming-dashboard/internal/infrastructure/storage"
	"github.com/eventops/rooming-dashboard/internal/mockapi"
	"github.com/eventops/rooming-dashboard/internal/pkg/config"
	"github.com/eventops/rooming-dashboard/internal/query"
	"github.com/eventops/rooming-dashboard/internal/web"
	"github.com/eventops/rooming-dashboard/internal/web/handler"
	"github.com/eventops/rooming-dashboard/internal/web/view"
	"github.com/eventops/rooming-dashboard/pkg/logger"
)

const (
	sessionTTL      = 7 * 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "rooming-dashboard",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("dashboard stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := map[string]handlers.Check{}

	// --- Session persistence ---
	var sessionStorage ports.SessionStorage
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Password: cfg.Redis.Password})
		if err != nil {
			return err
		}
		defer rdb.Close()
		rs := redisdb.NewSessionStorage(rdb, cfg.Redis.Namespace, sessionTTL)
		checks["redis"] = rs.Ping
		sessionStorage = rs
	default:
		sessionStorage = storage.NewFileSessionStorage(cfg.Session.FilePath)
	}

	session := store.NewAuthStore(ctx, sessionStorage, logger.Component("auth_store"),
		store.WithValidator(service.ValidateTokenExpiry(time.Now)))
	if err := session.Initialize(ctx); err != nil {
		log.Warn().Err(err).Msg("persisted session discarded")
	}

	// --- Mock API ---
	if cfg.MockAPI.Enabled {
		api, err := mockapi.NewServer(mockapi.Options{
			JWTSecret: cfg.MockAPI.JWTSecret,
			TokenTTL:  cfg.MockAPI.TokenTTL,
			Logger:    logger.Component("mockapi"),
		})
		if err != nil {
			return err
		}
		go serve(api, cfg.MockAPI.Addr, log)
		defer shutdown(api, log)
	}

	// --- API client, services and cache ---
	nav := handler.NewLoginNavigator(logger.Component("navigator"))
	client, err := apiclient.New(cfg.API.BaseURL, logger.Component("apiclient"),
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithSession(session, nav),
	)
	if err != nil {
		return err
	}
	checks["api"] = handlers.HTTPCheck(&http.Client{Timeout: cfg.API.Timeout}, client.BaseURL()+"/users")

	qcfg := query.DefaultConfig()
	qcfg.StaleTime = cfg.Query.StaleTime
	qcfg.CacheTime = cfg.Query.CacheTime
	qcfg.Backoff = query.Backoff{Base: cfg.Query.RetryDelay, Max: cfg.Query.RetryMaxDelay}
	qc := query.New(qcfg, logger.Component("query"))

	users := query.NewUsers(qc, service.NewUserService(client, logger.Component("user_service")))
	auth := service.NewAuthService(client, session, logger.Component("auth_service"))

	// --- Rooming lists ---
	source := fixtures.Embedded()
	if cfg.RFPFixturePath != "" {
		source = fixtures.File(cfg.RFPFixturePath)
	}
	records, err := source.Load(ctx)
	if err != nil {
		return err
	}
	rfps := store.NewRFPStore()
	rfps.SetRFPs(records)
	log.Info().Int("rfps", len(records)).Msg("rooming lists loaded")

	// --- Web ---
	e, err := web.NewRouter(web.Deps{
		Session:   session,
		RFPs:      rfps,
		Users:     users,
		Auth:      auth,
		Navigator: nav,
		Checks:    checks,
		Settings: view.Settings{
			Env:          cfg.Env,
			APIBaseURL:   client.BaseURL(),
			SessionStore: cfg.Session.Store,
			StaleTime:    cfg.Query.StaleTime.String(),
			CacheTime:    cfg.Query.CacheTime.String(),
			MockAPI:      cfg.MockAPI.Enabled,
		},
		DevMode: cfg.DevMode,
		Logger:  logger.Component("web"),
	})
	if err != nil {
		return err
	}

	go serve(e, ":"+cfg.Port, log)
	log.Info().Str("port", cfg.Port).Str("api", client.BaseURL()).Msg("dashboard started")

	<-ctx.Done()
	shutdown(e, log)
	return nil
}

func serve(e *echo.Echo, addr string, log zerolog.Logger) {
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Str("addr", addr).Msg("server failed")
	}
}

func shutdown(e *echo.Echo, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

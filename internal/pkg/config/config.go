package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const EnvProduction = "production"

const (
	SessionStoreFile  = "file"
	SessionStoreRedis = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"APP_ENV,   default=development"`
	DevMode  bool   `env:"DEV_MODE,  default=false"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// RFPFixturePath overrides the embedded rooming lists when set.
	RFPFixturePath string `env:"RFP_FIXTURE_PATH"`

	API     APIConfig
	Query   QueryConfig
	Session SessionConfig
	Redis   RedisConfig
	MockAPI MockAPIConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8081/api"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=10s"`
}

type QueryConfig struct {
	StaleTime     time.Duration `env:"QUERY_STALE_TIME,      default=5m"`
	CacheTime     time.Duration `env:"QUERY_CACHE_TIME,      default=10m"`
	RetryDelay    time.Duration `env:"QUERY_RETRY_DELAY,     default=1s"`
	RetryMaxDelay time.Duration `env:"QUERY_RETRY_MAX_DELAY, default=30s"`
}

// SessionConfig selects where the auth snapshot is persisted: "file" or "redis".
type SessionConfig struct {
	Store    string `env:"SESSION_STORE, default=file"`
	FilePath string `env:"SESSION_FILE,  default=.dashboard/auth-storage.json"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,      default=localhost:6379"`
	DB        int    `env:"REDIS_DB,        default=0"`
	Password  string `env:"REDIS_PASSWORD"`
	Namespace string `env:"REDIS_NAMESPACE, default=dashboard"`
}

// MockAPIConfig controls the in-process mock REST API.
type MockAPIConfig struct {
	Enabled   bool          `env:"MOCK_API_ENABLED, default=false"`
	Addr      string        `env:"MOCK_API_ADDR,    default=:8081"`
	JWTSecret string        `env:"MOCK_JWT_SECRET,  default=dev-secret"`
	TokenTTL  time.Duration `env:"MOCK_TOKEN_TTL,   default=24h"`
}

// Load reads a .env file when present, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations that must never run.
func (c *Config) Validate() error {
	var errs []error
	if c.DevMode && c.IsProduction() {
		errs = append(errs, errors.New("config: DEV_MODE must not be enabled in production"))
	}
	switch c.Session.Store {
	case SessionStoreFile, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("config: unknown SESSION_STORE %q", c.Session.Store))
	}
	if c.MockAPI.Enabled && c.IsProduction() {
		errs = append(errs, errors.New("config: MOCK_API_ENABLED must not be set in production"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Session store backends selectable through SESSION_STORE.
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreCookie   = "cookie"
	StoreMemory   = "memory"
)

// minSecretLength matches the HMAC key size the cookie store requires.
const minSecretLength = 32

type Config struct {
	Port          string        `mapstructure:"PORT"`
	Env           string        `mapstructure:"ENV"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int32         `mapstructure:"DB_MIN_CONNS"`
	MigrationsDir string        `mapstructure:"MIGRATIONS_DIR"`
	SessionStore  string        `mapstructure:"SESSION_STORE"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	CookieName    string        `mapstructure:"SESSION_COOKIE_NAME"`
	CookieSecure  bool          `mapstructure:"SESSION_COOKIE_SECURE"`
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	RedisURL      string        `mapstructure:"REDIS_URL"`
	AuthRequired  bool          `mapstructure:"AUTH_REQUIRED"`
	BcryptCost    int           `mapstructure:"BCRYPT_COST"`
	CORSOrigins   []string      `mapstructure:"CORS_ORIGINS"`
}

var envKeys = []string{
	"PORT",
	"ENV",
	"DATABASE_URL",
	"DB_MAX_CONNS",
	"DB_MIN_CONNS",
	"MIGRATIONS_DIR",
	"SESSION_STORE",
	"SESSION_TTL",
	"SESSION_COOKIE_NAME",
	"SESSION_COOKIE_SECURE",
	"SESSION_SECRET",
	"REDIS_URL",
	"AUTH_REQUIRED",
	"BCRYPT_COST",
	"CORS_ORIGINS",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("MIGRATIONS_DIR", "./migrations")
	v.SetDefault("SESSION_STORE", StorePostgres)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_NAME", "session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range envKeys {
		v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	// Session cookies never travel over plain HTTP in production.
	if cfg.IsProduction() {
		cfg.CookieSecure = true
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	switch c.SessionStore {
	case StorePostgres, StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE is %q", StoreRedis)
		}
	case StoreCookie:
		if len(c.SessionSecret) < minSecretLength {
			return fmt.Errorf("SESSION_SECRET must be at least %d bytes when SESSION_STORE is %q", minSecretLength, StoreCookie)
		}
	default:
		return fmt.Errorf("SESSION_STORE must be \"postgres\", \"redis\", \"cookie\", or \"memory\", got %q", c.SessionStore)
	}

	if c.IsProduction() && c.SessionStore == StoreMemory {
		return fmt.Errorf("SESSION_STORE %q is not allowed in production", StoreMemory)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}

	return nil
}

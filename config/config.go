package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve in minimal containers

	"gopkg.in/yaml.v3"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	// devSessionSecret is only ever used outside production.
	devSessionSecret = "dinedash_dev_secret_change_me"
)

// Config holds all application configuration.
type Config struct {
	Env       string          `yaml:"env"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Seed      SeedConfig      `yaml:"seed"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           string   `yaml:"port"`
	GinMode        string   `yaml:"gin_mode"`
	AllowedOrigins []string `yaml:"allowed_origins"` // browser origins allowed to send the session cookie
	Timezone       string   `yaml:"timezone"`        // used to bucket analytics by month and hour
	TrustedProxies []string `yaml:"trusted_proxies"` // proxies whose X-Forwarded-For is believed; empty means none
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "postgres"
	DSN    string `yaml:"dsn"`    // file path for sqlite, connection string for postgres
}

// AuthConfig contains session and password settings.
type AuthConfig struct {
	SessionSecret string        `yaml:"session_secret"`
	CookieName    string        `yaml:"cookie_name"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	TokenFormat   string        `yaml:"token_format"` // "jwt" or "json"
	BcryptCost    int           `yaml:"bcrypt_cost"`
}

// SeedConfig describes the optional manager account created at startup.
type SeedConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// RateLimitConfig bounds login and signup attempts per client.
type RateLimitConfig struct {
	Attempts      int           `yaml:"attempts"`
	Window        time.Duration `yaml:"window"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		Env: EnvDevelopment,
		Server: ServerConfig{
			Port:     "8080",
			Timezone: "UTC",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "dinedash.db",
		},
		Auth: AuthConfig{
			CookieName:  "dinedash_session",
			SessionTTL:  7 * 24 * time.Hour,
			TokenFormat: "jwt",
			BcryptCost:  10,
		},
		Seed: SeedConfig{
			Name: "Manager",
		},
		RateLimit: RateLimitConfig{
			Attempts: 10,
			Window:   15 * time.Minute,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Auth.SessionSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("SESSION_SECRET environment variable is not set; required for production")
		}
		cfg.Auth.SessionSecret = devSessionSecret
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Env = getEnv("APP_ENV", c.Env)
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.GinMode = getEnv("GIN_MODE", c.Server.GinMode)
	c.Server.Timezone = getEnv("TIMEZONE", c.Server.Timezone)
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}
	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		c.Server.TrustedProxies = splitList(proxies)
	}
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DB_DSN", c.Database.DSN)
	c.Auth.SessionSecret = getEnv("SESSION_SECRET", c.Auth.SessionSecret)
	c.Auth.CookieName = getEnv("SESSION_COOKIE", c.Auth.CookieName)
	c.Auth.TokenFormat = getEnv("SESSION_TOKEN_FORMAT", c.Auth.TokenFormat)
	c.Seed.Email = getEnv("SEED_EMAIL", c.Seed.Email)
	c.Seed.Password = getEnv("SEED_PASSWORD", c.Seed.Password)
	c.Seed.Name = getEnv("SEED_NAME", c.Seed.Name)
	c.RateLimit.RedisAddr = getEnv("REDIS_ADDR", c.RateLimit.RedisAddr)
	c.RateLimit.RedisPassword = getEnv("REDIS_PASSWORD", c.RateLimit.RedisPassword)

	var err error
	if c.Auth.SessionTTL, err = getEnvDuration("SESSION_TTL", c.Auth.SessionTTL); err != nil {
		return err
	}
	if c.Auth.BcryptCost, err = getEnvInt("BCRYPT_COST", c.Auth.BcryptCost); err != nil {
		return err
	}
	if c.RateLimit.Attempts, err = getEnvInt("RATE_LIMIT_ATTEMPTS", c.RateLimit.Attempts); err != nil {
		return err
	}
	if c.RateLimit.Window, err = getEnvDuration("RATE_LIMIT_WINDOW", c.RateLimit.Window); err != nil {
		return err
	}
	if c.RateLimit.RedisDB, err = getEnvInt("REDIS_DB", c.RateLimit.RedisDB); err != nil {
		return err
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", c.Database.Driver)
	}
	switch c.Auth.TokenFormat {
	case "jwt", "json":
	default:
		return fmt.Errorf("unsupported SESSION_TOKEN_FORMAT %q (want jwt or json)", c.Auth.TokenFormat)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Server.Timezone, err)
	}
	return nil
}

// Location returns the analytics time zone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, fallback int) (int, error) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return n, nil
	}
	return fallback, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return fallback, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, Port: %s, DB: %s(%s), Session: %s/%s, Auth: *** (masked) ***}",
		c.Env, c.Server.Port, c.Database.Driver, c.Database.DSN, c.Auth.CookieName, c.Auth.TokenFormat)
}

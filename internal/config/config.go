package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/cesargomez89/fullstack/internal/constants"
)

// ConfigPathEnvVar points at an optional YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// Config holds all application configuration
type Config struct {
	App             string        `koanf:"app"`
	Port            string        `koanf:"port"`
	DBDriver        string        `koanf:"db_driver"`
	DatabaseURL     string        `koanf:"database_url"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimit       int           `koanf:"rate_limit_requests"`
	RateWindow      time.Duration `koanf:"rate_limit_window"`
	AuthDomain      string        `koanf:"auth_domain"`
	AuthAudience    string        `koanf:"auth_audience"`
	AuthIssuer      string        `koanf:"auth_issuer"`
	AuthJWKSURL     string        `koanf:"auth_jwks_url"`
	AuthJWKSTTL     time.Duration `koanf:"auth_jwks_ttl"`
	AuthJWKSTimeout time.Duration `koanf:"auth_jwks_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// knownKeys lists the environment variables (lowercased) that map onto Config.
var knownKeys = map[string]bool{
	"port":                true,
	"db_driver":           true,
	"database_url":        true,
	"log_level":           true,
	"log_format":          true,
	"cors_origins":        true,
	"rate_limit_requests": true,
	"rate_limit_window":   true,
	"auth_domain":         true,
	"auth_audience":       true,
	"auth_issuer":         true,
	"auth_jwks_url":       true,
	"auth_jwks_ttl":       true,
	"auth_jwks_timeout":   true,
	"shutdown_timeout":    true,
}

// Defaults returns the configuration an app starts from before any file or
// environment overrides.
func Defaults(app string) *Config {
	port, ok := constants.DefaultPorts[app]
	if !ok {
		port = constants.DefaultPort
	}
	return &Config{
		App:             app,
		Port:            port,
		DBDriver:        constants.DefaultDBDriver,
		DatabaseURL:     app + ".db",
		LogLevel:        constants.DefaultLogLevel,
		LogFormat:       constants.DefaultLogFormat,
		CORSOrigins:     []string{"*"},
		RateLimit:       constants.DefaultRateLimit,
		RateWindow:      constants.DefaultRateWindow,
		AuthAudience:    constants.DefaultAudiences[app],
		AuthJWKSTTL:     constants.DefaultJWKSTTL,
		AuthJWKSTimeout: constants.DefaultJWKSTimeout,
		ShutdownTimeout: constants.DefaultShutdownTimeout,
	}
}

// Load layers configuration: defaults, then an optional YAML file, then the
// environment (a .env file in the working directory is read first).
func Load(app string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(app), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := splitList(k, "cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.App = app
	cfg.deriveAuth()

	return cfg, nil
}

// envKey maps PORT -> port and drops variables Config does not know about.
func envKey(key string) string {
	key = strings.ToLower(key)
	if !knownKeys[key] {
		return ""
	}
	return key
}

// splitList turns a comma separated env value into a list.
func splitList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// deriveAuth fills issuer and key set location from the auth domain.
func (c *Config) deriveAuth() {
	if c.AuthDomain == "" {
		return
	}
	base := c.AuthDomain
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	base = strings.TrimSuffix(base, "/")
	if c.AuthIssuer == "" {
		c.AuthIssuer = base + "/"
	}
	if c.AuthJWKSURL == "" {
		c.AuthJWKSURL = base + constants.JWKSPath
	}
}

// RequiresAuth reports whether the app guards routes with bearer tokens.
func (c *Config) RequiresAuth() bool {
	return c.App == constants.AppBookmarkie || c.App == constants.AppCoffeeShop
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errs []string

	if c.Port == "" {
		errs = append(errs, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errs = append(errs, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	switch c.DBDriver {
	case constants.DriverSQLite, constants.DriverPostgres:
	default:
		errs = append(errs, fmt.Sprintf("DB_DRIVER must be one of: sqlite, postgres, got: %s", c.DBDriver))
	}

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if c.RateLimit < 0 {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_REQUESTS cannot be negative, got: %d", c.RateLimit))
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		errs = append(errs, "RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}

	if c.RequiresAuth() {
		if c.AuthJWKSURL == "" {
			errs = append(errs, "AUTH_DOMAIN or AUTH_JWKS_URL must be set")
		} else if _, err := url.ParseRequestURI(c.AuthJWKSURL); err != nil {
			errs = append(errs, fmt.Sprintf("AUTH_JWKS_URL is not a valid URL: %s", c.AuthJWKSURL))
		}
		if c.AuthIssuer == "" {
			errs = append(errs, "AUTH_ISSUER cannot be empty")
		}
		if c.AuthAudience == "" {
			errs = append(errs, "AUTH_AUDIENCE cannot be empty")
		}
		if c.AuthJWKSTTL <= 0 {
			errs = append(errs, "AUTH_JWKS_TTL must be positive")
		}
		if c.AuthJWKSTimeout <= 0 {
			errs = append(errs, "AUTH_JWKS_TIMEOUT must be positive")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

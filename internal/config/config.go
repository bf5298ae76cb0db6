// Package config provides configuration management using Viper.
// It loads configuration from environment variables, .env files, and config files.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerPort                = 8080
	defaultServerHost                = "0.0.0.0"
	defaultReadTimeout               = 30 * time.Second
	defaultWriteTimeout              = 30 * time.Second
	defaultShutdownTimeout           = 10 * time.Second
	defaultRequestTimeout            = 5 * time.Second
	defaultDatabaseDriver            = "sqlite"
	defaultDatabaseURL               = "./data/vidhub.db"
	defaultDatabaseConnectionTimeout = 5 * time.Second
	defaultLogLevel                  = "info"
	defaultLogPretty                 = false
	defaultJWTExpiresIn              = "7d"
	defaultBcryptRounds              = 12
	defaultCORSOrigin                = "http://localhost:3000"
	defaultRateLimitWindowMS         = 15 * 60 * 1000
	defaultRateLimitMaxRequests      = 100
	defaultMaxFileSize               = 100 * 1024 * 1024
	envPrefix                        = "VIDHUB"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Upload    UploadConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration // deadline applied to each handler's database work
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Driver            string // mysql or sqlite
	URL               string
	MigrationsPath    string // defaults to file://migrations/<driver>
	ConnectionTimeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// AuthConfig holds token and password hashing configuration
type AuthConfig struct {
	JWTSecret    string
	JWTExpiresIn string        // Go duration, seconds, or "<n>d"
	TokenTTL     time.Duration `mapstructure:"-"`
	BcryptRounds int
}

// CORSConfig holds the allowed browser origins
type CORSConfig struct {
	Origins []string
}

// RateLimitConfig holds the fixed-window rate limit applied per client IP
type RateLimitConfig struct {
	WindowMS    int
	MaxRequests int
}

// Window returns the rate limit window as a duration
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMS) * time.Millisecond
}

// RedisConfig holds the optional redis connection used by the rate limiter
type RedisConfig struct {
	URL string
}

// UploadConfig holds request size limits
type UploadConfig struct {
	MaxFileSize int64 // bytes
}

// envAliases binds the unprefixed variable names used by existing deployments
var envAliases = map[string]string{
	"database.url":          "DATABASE_URL",
	"database.driver":       "DATABASE_DRIVER",
	"auth.jwtsecret":        "JWT_SECRET",
	"auth.jwtexpiresin":     "JWT_EXPIRES_IN",
	"auth.bcryptrounds":     "BCRYPT_ROUNDS",
	"cors.origins":          "CORS_ORIGIN",
	"ratelimit.windowms":    "RATE_LIMIT_WINDOW_MS",
	"ratelimit.maxrequests": "RATE_LIMIT_MAX_REQUESTS",
	"upload.maxfilesize":    "MAX_FILE_SIZE",
	"redis.url":             "REDIS_URL",
	"server.port":           "PORT",
	"logging.level":         "LOG_LEVEL",
}

// Load reads configuration from .env file, config files, environment variables, and defaults
func Load() (*Config, error) {
	// .env files are optional in production and CI where env vars are set directly
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/vidhub")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, alias := range envAliases {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", alias, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	ttl, err := ParseExpiry(cfg.Auth.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Auth.TokenTTL = ttl

	if cfg.Database.MigrationsPath == "" {
		cfg.Database.MigrationsPath = "file://migrations/" + cfg.Database.Driver
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.readtimeout", defaultReadTimeout)
	v.SetDefault("server.writetimeout", defaultWriteTimeout)
	v.SetDefault("server.shutdowntimeout", defaultShutdownTimeout)
	v.SetDefault("server.requesttimeout", defaultRequestTimeout)

	v.SetDefault("database.driver", defaultDatabaseDriver)
	v.SetDefault("database.url", defaultDatabaseURL)
	v.SetDefault("database.migrationspath", "")
	v.SetDefault("database.connectiontimeout", defaultDatabaseConnectionTimeout)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.pretty", defaultLogPretty)

	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.jwtexpiresin", defaultJWTExpiresIn)
	v.SetDefault("auth.bcryptrounds", defaultBcryptRounds)

	v.SetDefault("cors.origins", []string{defaultCORSOrigin})

	v.SetDefault("ratelimit.windowms", defaultRateLimitWindowMS)
	v.SetDefault("ratelimit.maxrequests", defaultRateLimitMaxRequests)

	v.SetDefault("redis.url", "")

	v.SetDefault("upload.maxfilesize", defaultMaxFileSize)
}

// ParseExpiry parses a token lifetime. Accepted forms are Go durations ("12h"),
// whole days ("7d") and plain seconds ("3600").
func ParseExpiry(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty token expiry")
	}
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid token expiry %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("invalid token expiry %q", raw)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid token expiry %q", raw)
	}
	return d, nil
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %v (must be > 0)", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %v (must be > 0)", c.Server.WriteTimeout)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request timeout: %v (must be > 0)", c.Server.RequestTimeout)
	}
	if c.Database.ConnectionTimeout <= 0 {
		return fmt.Errorf("invalid database connection timeout: %v (must be > 0)", c.Database.ConnectionTimeout)
	}

	validDrivers := []string{"mysql", "sqlite"}
	if !contains(validDrivers, c.Database.Driver) {
		return fmt.Errorf("invalid database driver: %s (must be one of: %s)", c.Database.Driver, strings.Join(validDrivers, ", "))
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.Auth.BcryptRounds < 4 || c.Auth.BcryptRounds > 31 {
		return fmt.Errorf("invalid bcrypt rounds: %d (must be between 4 and 31)", c.Auth.BcryptRounds)
	}

	if c.RateLimit.WindowMS <= 0 {
		return fmt.Errorf("invalid rate limit window: %dms (must be > 0)", c.RateLimit.WindowMS)
	}
	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("invalid rate limit max requests: %d (must be > 0)", c.RateLimit.MaxRequests)
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("invalid max file size: %d (must be > 0)", c.Upload.MaxFileSize)
	}

	return nil
}

// contains checks if a string slice contains a specific value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

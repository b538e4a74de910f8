// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minJWTLength = 32
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	JwtSecretKey   string      `mapstructure:"JWT_SECRET_KEY" yaml:"jwt_secret_key"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse proxies.
	// If empty, X-Forwarded-For headers are ignored entirely.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES" yaml:"trusted_proxies"`
}

// DatabaseConfig holds PostgreSQL connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST" yaml:"host"`
	Port         int    `mapstructure:"PORT" yaml:"port"`
	User         string `mapstructure:"USER" yaml:"user"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	Name         string `mapstructure:"NAME" yaml:"name"`
	SSLMode      string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS" yaml:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"MAX_IDLE_CONNS" yaml:"max_idle_conns"`
	ConnMaxLife  string `mapstructure:"CONN_MAX_LIFE" yaml:"conn_max_life"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and
// other URL-based database tools.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// ConnString returns a key-value connection string for pgxpool.
func (c *DatabaseConfig) ConnString() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslmode)
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS" yaml:"address"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	DB           int    `mapstructure:"DB" yaml:"db"`
	UseTLS       bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
	PoolSize     int    `mapstructure:"POOL_SIZE" yaml:"pool_size"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS" yaml:"min_idle_conns"`
}

// EventServiceConfig holds configuration for the Redis-based event service.
type EventServiceConfig struct {
	PublishTimeoutSeconds   int `mapstructure:"PUBLISH_TIMEOUT_SECONDS" yaml:"publish_timeout_seconds"`
	SubscribeTimeoutSeconds int `mapstructure:"SUBSCRIBE_TIMEOUT_SECONDS" yaml:"subscribe_timeout_seconds"`
	EventBufferSize         int `mapstructure:"EVENT_BUFFER_SIZE" yaml:"event_buffer_size"`
}

// RateLimitConfig holds configuration for rate limiting mutating endpoints.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"REQUESTS_PER_MINUTE" yaml:"requests_per_minute"`
	WindowSeconds     int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// TallyConfig controls schedule vote counting behavior.
type TallyConfig struct {
	// DedupeVotes caps each response at one vote per candidate. Off by default:
	// the accumulate-by-iteration behavior is the one clients were built against.
	DedupeVotes bool `mapstructure:"DEDUPE_VOTES" yaml:"dedupe_votes"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server       ServerConfig       `mapstructure:"SERVER" yaml:"server"`
	Database     DatabaseConfig     `mapstructure:"DATABASE" yaml:"database"`
	Redis        RedisConfig        `mapstructure:"REDIS" yaml:"redis"`
	EventService EventServiceConfig `mapstructure:"EVENT_SERVICE" yaml:"event_service"`
	RateLimit    RateLimitConfig    `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
	Tally        TallyConfig        `mapstructure:"TALLY" yaml:"tally"`
}

// IsDevelopment returns true when running in development.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true when running in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper, sets
// defaults, unmarshals into Config, and validates the result.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{})
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "warikan_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("DATABASE.MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE.CONN_MAX_LIFE", "1h")
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 3)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)
	v.SetDefault("EVENT_SERVICE.PUBLISH_TIMEOUT_SECONDS", 5)
	v.SetDefault("EVENT_SERVICE.SUBSCRIBE_TIMEOUT_SECONDS", 10)
	v.SetDefault("EVENT_SERVICE.EVENT_BUFFER_SIZE", 100)
	v.SetDefault("RATE_LIMIT.REQUESTS_PER_MINUTE", 100)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("TALLY.DEDUPE_VOTES", false)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		{"SERVER.JWT_SECRET_KEY", "JWT_SECRET_KEY"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"EVENT_SERVICE.PUBLISH_TIMEOUT_SECONDS", "EVENT_SERVICE_PUBLISH_TIMEOUT_SECONDS"},
		{"EVENT_SERVICE.SUBSCRIBE_TIMEOUT_SECONDS", "EVENT_SERVICE_SUBSCRIBE_TIMEOUT_SECONDS"},
		{"EVENT_SERVICE.EVENT_BUFFER_SIZE", "EVENT_SERVICE_EVENT_BUFFER_SIZE"},
		{"RATE_LIMIT.REQUESTS_PER_MINUTE", "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		{"TALLY.DEDUPE_VOTES", "TALLY_DEDUPE_VOTES"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"db_host", cfg.Database.Host,
		"redis_address", cfg.Redis.Address,
		"tally_dedupe_votes", cfg.Tally.DedupeVotes,
	)

	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}

	// Production hardening: a weak JWT secret or wildcard CORS is a
	// misconfiguration, not a default to run with.
	if cfg.IsProduction() {
		if len(cfg.Server.JwtSecretKey) < minJWTLength {
			return fmt.Errorf("JWT secret key must be at least %d characters long", minJWTLength)
		}
		if containsWildcard(cfg.Server.AllowedOrigins) {
			return fmt.Errorf("wildcard allowed origin is not permitted in production")
		}
	}

	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

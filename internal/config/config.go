package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Check    CheckConfig    `yaml:"check"`
	Presence PresenceConfig `yaml:"presence"`
	Notify   NotifyConfig   `yaml:"notify"`
	Redis    RedisConfig    `yaml:"redis"`
	Public   PublicConfig   `yaml:"public"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	HealthCheck      time.Duration `yaml:"health_check"       env:"DATABASE_HEALTH_CHECK"       env-default:"1m"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"15s"`
	AppName          string        `yaml:"app_name"           env:"DATABASE_APP_NAME"           env-default:"stockcheck"`
}

// AuthConfig holds manager token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"stockcheck"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CheckConfig tunes the verification and load flow.
type CheckConfig struct {
	LoadPolicy   string `yaml:"load_policy"   env:"CHECK_LOAD_POLICY"   env-default:"sticky"`
	MaxDepth     int    `yaml:"max_depth"     env:"CHECK_MAX_DEPTH"     env-default:"5"`
	HistoryLimit int    `yaml:"history_limit" env:"CHECK_HISTORY_LIMIT" env-default:"200"`
}

// PresenceConfig holds presence tracking settings.
type PresenceConfig struct {
	Window          time.Duration `yaml:"window"            env:"PRESENCE_WINDOW"            env-default:"2m"`
	BroadcastOnPing bool          `yaml:"broadcast_on_ping" env:"PRESENCE_BROADCAST_ON_PING" env-default:"true"`
	Retention       time.Duration `yaml:"retention"         env:"PRESENCE_RETENTION"         env-default:"24h"`
	PurgeSchedule   string        `yaml:"purge_schedule"    env:"PRESENCE_PURGE_SCHEDULE"    env-default:"@every 1h"`
}

// NotifyConfig holds change notifier settings.
type NotifyConfig struct {
	Buffer       int           `yaml:"buffer"        env:"NOTIFY_BUFFER"        env-default:"64"`
	PingInterval time.Duration `yaml:"ping_interval" env:"NOTIFY_PING_INTERVAL" env-default:"30s"`
}

// RedisConfig enables cross-instance fan-out of changes. An empty URL keeps
// the notifier in-process.
type RedisConfig struct {
	URL     string `yaml:"url"     env:"REDIS_URL"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"stockcheck:changes"`
}

// PublicConfig holds settings for share-token routes.
type PublicConfig struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"PUBLIC_RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// MetricsConfig holds Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// RedisEnabled reports whether the Redis bridge should run.
func (c RedisConfig) RedisEnabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

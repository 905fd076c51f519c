package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the registration client and dev server.
type Config struct {
	App      AppConfig
	Client   ClientConfig
	Proxy    ProxyConfig
	Static   StaticConfig
	Session  SessionConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Messages MessagesConfig
}

// AppConfig controls dev server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// ClientConfig holds values consumed by the registration flow's composition root.
type ClientConfig struct {
	APIBaseURL           string
	PostRegistrationPath string
	StrictValidation     bool
}

// ProxyConfig mirrors the front end dev server's /api proxy.
type ProxyConfig struct {
	Prefix       string
	Target       string
	ChangeOrigin bool
	Secure       bool
}

// StaticConfig locates the built front end assets.
type StaticConfig struct {
	Dir  string
	Base string
}

// SessionConfig selects where established sessions are kept.
type SessionConfig struct {
	Store             string
	DefaultTTLMinutes int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string
	Encoding string
}

// MessagesConfig overrides the user-facing message templates. Empty values keep the defaults.
type MessagesConfig struct {
	Success        string
	Malformed      string
	Unreachable    string
	SessionFailure string
}

// Session store kinds.
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	store := strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory))
	switch store {
	case SessionStoreMemory, SessionStoreRedis, SessionStorePostgres:
	default:
		return nil, fmt.Errorf("invalid SESSION_STORE %q", store)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "signup-devserver"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "5173"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Client: ClientConfig{
			APIBaseURL:           strings.TrimRight(getEnv("API_URL", "http://localhost:3000"), "/"),
			PostRegistrationPath: getEnv("POST_REGISTRATION_PATH", "/risk-check"),
			StrictValidation:     getEnvAsBool("REGISTRATION_STRICT_VALIDATION", true),
		},
		Proxy: ProxyConfig{
			Prefix:       getEnv("PROXY_PREFIX", "/api"),
			Target:       strings.TrimRight(getEnv("PROXY_TARGET", "http://localhost:3000"), "/"),
			ChangeOrigin: getEnvAsBool("PROXY_CHANGE_ORIGIN", true),
			Secure:       getEnvAsBool("PROXY_SECURE", false),
		},
		Static: StaticConfig{
			Dir:  getEnv("STATIC_DIR", "./dist"),
			Base: getEnv("STATIC_BASE", "./"),
		},
		Session: SessionConfig{
			Store:             store,
			DefaultTTLMinutes: getEnvAsInt("SESSION_DEFAULT_TTL_MINUTES", 60),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "session:"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Messages: MessagesConfig{
			Success:        os.Getenv("MSG_SUCCESS"),
			Malformed:      os.Getenv("MSG_MALFORMED_RESPONSE"),
			Unreachable:    os.Getenv("MSG_NETWORK_UNREACHABLE"),
			SessionFailure: os.Getenv("MSG_SESSION_FAILURE"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// DefaultTTL returns the session lifetime used when the token carries no expiry.
func (s SessionConfig) DefaultTTL() time.Duration {
	if s.DefaultTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.DefaultTTLMinutes) * time.Minute
}

// MountPath converts the asset base into the route prefix static files are served under.
// A relative base such as "./" serves from the root.
func (s StaticConfig) MountPath() string {
	base := strings.TrimPrefix(s.Base, ".")
	if base == "" || base == "/" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return strings.TrimRight(base, "/")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

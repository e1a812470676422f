// Package config loads server configuration. Values come from, in increasing
// precedence: built-in defaults, an optional YAML file (EYECANDY_CONFIG_FILE),
// an optional .env file, and process environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	Environment   string
	LogLevel      string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration
	AdminToken    string

	// TrustedProxies are CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string

	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Geolocation GeolocationConfig
	Teaser      TeaserConfig
	Tracing     TracingConfig
}

// DatabaseConfig configures the Postgres pool. Empty URL selects in-memory stores.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the Redis client. Empty URL selects the in-memory teaser store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit sink. Empty Brokers keeps audit in memory.
type KafkaConfig struct {
	Brokers         string
	AuditTopic      string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
}

// GeolocationConfig configures the IP geolocation provider.
type GeolocationConfig struct {
	BaseURL          string
	Timeout          time.Duration
	CacheTTL         time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

// TeaserConfig configures teaser session tracking.
type TeaserConfig struct {
	// Retention keeps expired sessions around so re-evaluations keep answering
	// teaser_expired instead of granting a fresh preview.
	Retention time.Duration
}

// TracingConfig configures OpenTelemetry trace export.
type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SamplingRate float64
	Insecure     bool
}

// Defaults
const (
	DefaultAddr          = ":8080"
	DefaultEnvironment   = "development"
	DefaultJWTIssuer     = "eyecandy"
	DefaultJWTAudience   = "eyecandy-api"
	DefaultJWTSigningKey = "dev-secret-key-change-in-production"
	DefaultTokenTTL      = 15 * time.Minute
	DefaultAuditTopic    = "eyecandy.audit.v1"
	DefaultGeoBaseURL    = "http://ip-api.com"
	DefaultGeoTimeout    = 2 * time.Second
	DefaultGeoCacheTTL   = 10 * time.Minute
	DefaultTeaserRetain  = 24 * time.Hour
)

// ErrInsecureSigningKey is returned when a non-development environment runs
// with the built-in JWT signing key.
var ErrInsecureSigningKey = errors.New("JWT_SIGNING_KEY must be set outside development")

// FromEnv builds a Server config so main stays lean. A missing .env file or
// config file is not an error; a malformed one is.
func FromEnv() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if path := os.Getenv("EYECANDY_CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Server{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	return load(k)
}

func load(k *koanf.Koanf) (Server, error) {
	l := loader{k: k}
	cfg := Server{
		Addr:           l.str("EYECANDY_ADDR", "server.addr", DefaultAddr),
		Environment:    l.str("EYECANDY_ENV", "server.environment", DefaultEnvironment),
		LogLevel:       l.str("LOG_LEVEL", "server.log_level", "info"),
		JWTSigningKey:  l.str("JWT_SIGNING_KEY", "auth.jwt_signing_key", DefaultJWTSigningKey),
		JWTIssuer:      l.str("JWT_ISSUER", "auth.jwt_issuer", DefaultJWTIssuer),
		JWTAudience:    l.str("JWT_AUDIENCE", "auth.jwt_audience", DefaultJWTAudience),
		TokenTTL:       l.duration("TOKEN_TTL", "auth.token_ttl", DefaultTokenTTL),
		AdminToken:     l.str("ADMIN_API_TOKEN", "auth.admin_token", ""),
		TrustedProxies: l.list("TRUSTED_PROXIES", "server.trusted_proxies"),
		Database: DatabaseConfig{
			URL:             l.str("DATABASE_URL", "database.url", ""),
			MaxOpenConns:    l.integer("DB_MAX_OPEN_CONNS", "database.max_open_conns", 25),
			MaxIdleConns:    l.integer("DB_MAX_IDLE_CONNS", "database.max_idle_conns", 5),
			ConnMaxLifetime: l.duration("DB_CONN_MAX_LIFETIME", "database.conn_max_lifetime", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          l.str("REDIS_URL", "redis.url", ""),
			PoolSize:     l.integer("REDIS_POOL_SIZE", "redis.pool_size", 10),
			MinIdleConns: l.integer("REDIS_MIN_IDLE_CONNS", "redis.min_idle_conns", 2),
			DialTimeout:  l.duration("REDIS_DIAL_TIMEOUT", "redis.dial_timeout", 5*time.Second),
			ReadTimeout:  l.duration("REDIS_READ_TIMEOUT", "redis.read_timeout", 3*time.Second),
			WriteTimeout: l.duration("REDIS_WRITE_TIMEOUT", "redis.write_timeout", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:         l.str("KAFKA_BROKERS", "kafka.brokers", ""),
			AuditTopic:      l.str("KAFKA_AUDIT_TOPIC", "kafka.audit_topic", DefaultAuditTopic),
			Acks:            l.str("KAFKA_ACKS", "kafka.acks", "all"),
			Retries:         l.integer("KAFKA_RETRIES", "kafka.retries", 3),
			DeliveryTimeout: l.duration("KAFKA_DELIVERY_TIMEOUT", "kafka.delivery_timeout", 30*time.Second),
		},
		Geolocation: GeolocationConfig{
			BaseURL:          l.str("GEO_BASE_URL", "geolocation.base_url", DefaultGeoBaseURL),
			Timeout:          l.duration("GEO_TIMEOUT", "geolocation.timeout", DefaultGeoTimeout),
			CacheTTL:         l.duration("GEO_CACHE_TTL", "geolocation.cache_ttl", DefaultGeoCacheTTL),
			FailureThreshold: l.integer("GEO_FAILURE_THRESHOLD", "geolocation.failure_threshold", 5),
			Cooldown:         l.duration("GEO_COOLDOWN", "geolocation.cooldown", 30*time.Second),
		},
		Teaser: TeaserConfig{
			Retention: l.duration("TEASER_RETENTION", "teaser.retention", DefaultTeaserRetain),
		},
		Tracing: TracingConfig{
			Enabled:      l.boolean("OTEL_ENABLED", "tracing.enabled", false),
			OTLPEndpoint: l.str("OTEL_EXPORTER_OTLP_ENDPOINT", "tracing.otlp_endpoint", "localhost:4318"),
			SamplingRate: l.float("OTEL_SAMPLING_RATE", "tracing.sampling_rate", 0.1),
			Insecure:     l.boolean("OTEL_INSECURE", "tracing.insecure", false),
		},
	}

	errs := l.errs
	if !cfg.IsDevelopment() && cfg.JWTSigningKey == DefaultJWTSigningKey {
		errs = append(errs, ErrInsecureSigningKey)
	}
	if cfg.Tracing.SamplingRate < 0 || cfg.Tracing.SamplingRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLING_RATE must be between 0 and 1, got %v", cfg.Tracing.SamplingRate))
	}
	if err := errors.Join(errs...); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// IsDevelopment reports whether dev-only conveniences (default keys) are acceptable.
func (s Server) IsDevelopment() bool {
	switch s.Environment {
	case "development", "dev", "local", "test", "testing":
		return true
	}
	return false
}

// loader resolves env var > koanf key > default and collects parse errors.
type loader struct {
	k    *koanf.Koanf
	errs []error
}

func (l *loader) raw(envKey, koanfKey string) (string, bool) {
	if v := os.Getenv(envKey); v != "" {
		return v, true
	}
	if l.k != nil && l.k.Exists(koanfKey) {
		return l.k.String(koanfKey), true
	}
	return "", false
}

func (l *loader) str(envKey, koanfKey, def string) string {
	if v, ok := l.raw(envKey, koanfKey); ok {
		return v
	}
	return def
}

func (l *loader) integer(envKey, koanfKey string, def int) int {
	v, ok := l.raw(envKey, koanfKey)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s must be an integer: %w", envKey, err))
		return def
	}
	return n
}

func (l *loader) duration(envKey, koanfKey string, def time.Duration) time.Duration {
	v, ok := l.raw(envKey, koanfKey)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s must be a duration: %w", envKey, err))
		return def
	}
	return d
}

func (l *loader) float(envKey, koanfKey string, def float64) float64 {
	v, ok := l.raw(envKey, koanfKey)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s must be a number: %w", envKey, err))
		return def
	}
	return f
}

func (l *loader) boolean(envKey, koanfKey string, def bool) bool {
	v, ok := l.raw(envKey, koanfKey)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s must be a boolean: %w", envKey, err))
		return def
	}
	return b
}

func (l *loader) list(envKey, koanfKey string) []string {
	if v := os.Getenv(envKey); v != "" {
		return splitList(v)
	}
	if l.k != nil && l.k.Exists(koanfKey) {
		if items := l.k.Strings(koanfKey); len(items) > 0 {
			return items
		}
		return splitList(l.k.String(koanfKey))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

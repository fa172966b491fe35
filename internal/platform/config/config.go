package config

import (
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	LogLevel        slog.Level
	JWTSigningKey   string
	JWTIssuer       string
	JWTAudience     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	BenefitYearFile string

	// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP
	// headers are honoured when resolving the client IP.
	TrustedProxies []netip.Prefix

	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
}

// PostgresConfig selects the household profile store. An empty URL keeps profiles in memory.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	ConnMaxLife  time.Duration
}

// RedisConfig selects the rate limiter backend. An empty URL keeps counters in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig selects the audit sink. No brokers keeps audit events in memory,
// retaining at most MemoryCapacity of the newest events.
type KafkaConfig struct {
	Brokers        string
	AuditTopic     string
	MemoryCapacity int
}

type RateLimitConfig struct {
	Disabled          bool
	RequestsPerMinute int
}

const devSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:            getenv("BENEFITSCOUT_ADDR", ":8080"),
		JWTSigningKey:   getenv("JWT_SIGNING_KEY", devSigningKey),
		JWTIssuer:       getenv("JWT_ISSUER", "benefitscout"),
		JWTAudience:     getenv("JWT_AUDIENCE", "benefitscout"),
		BenefitYearFile: os.Getenv("BENEFIT_YEAR_FILE"),
		Postgres: PostgresConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			ConnMaxLife:  30 * time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:    os.Getenv("KAFKA_BROKERS"),
			AuditTopic: getenv("AUDIT_TOPIC", "benefitscout.audit"),
		},
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("DISABLE_RATE_LIMITING") == "true",
		},
	}

	var err error
	if cfg.LogLevel, err = parseLevel(os.Getenv("LOG_LEVEL")); err != nil {
		return Server{}, err
	}
	if cfg.RateLimit.RequestsPerMinute, err = positiveInt("RATE_LIMIT_PER_MINUTE", 60); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.MemoryCapacity, err = positiveInt("AUDIT_MEMORY_CAPACITY", 10000); err != nil {
		return Server{}, err
	}
	if cfg.TrustedProxies, err = prefixes("TRUSTED_PROXIES"); err != nil {
		return Server{}, err
	}
	if cfg.RequestTimeout, err = duration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.ShutdownTimeout, err = duration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// UsesDevSigningKey reports whether no JWT_SIGNING_KEY was configured.
func (s Server) UsesDevSigningKey() bool {
	return s.JWTSigningKey == devSigningKey
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseLevel(raw string) (slog.Level, error) {
	if raw == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func positiveInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}

// prefixes parses a comma-separated list of CIDRs or bare addresses.
func prefixes(key string) ([]netip.Prefix, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil, nil
	}
	var out []netip.Prefix
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "/") {
			p, err := netip.ParsePrefix(part)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid prefix %q: %w", key, part, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(part)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid address %q: %w", key, part, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

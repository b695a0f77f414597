package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreRedis  = "redis"
	StoreMemory = "memory"

	// DefaultJWTSecret is only meant for local development.
	DefaultJWTSecret = "supersecretkey"
)

type Config struct {
	ListenPort      string        // ex: ":3001"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	APIPrefix   string   // ex: "/api"
	CORSOrigins []string // allowed browser origins

	// Admin credential and session tokens
	AdminUser     string
	AdminPass     string
	AdminPassHash string // bcrypt hash, takes precedence over AdminPass
	JWTSecret     string
	TokenTTL      time.Duration

	LoginBurst     int // opt-in: login attempts per client before throttling, 0 (default) disables
	LoginPerMinute int // login attempts regained per minute

	Store    string // "redis" | "memory"
	SeedFile string // optional YAML file loaded into an empty store

	// Redis
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold  int

	AllowedCIDRS []string // optional, restricts the probe endpoints
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STATUSPAGE_LISTEN_PORT", ":3001"),
		ShutdownTimeout: mustDuration("STATUSPAGE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("STATUSPAGE_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("STATUSPAGE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STATUSPAGE_PRETTY_LOG", true),

		// HTTP surface
		APIPrefix:   normalizePrefix(getenv("STATUSPAGE_API_PREFIX", "/api")),
		CORSOrigins: splitAndTrim(getenv("STATUSPAGE_CORS_ORIGIN", "http://localhost:3000")),

		// Auth
		AdminUser:     getenv("STATUSPAGE_ADMIN_USER", "admin"),
		AdminPass:     getenv("STATUSPAGE_ADMIN_PASS", "password"),
		AdminPassHash: getenv("STATUSPAGE_ADMIN_PASS_HASH", ""),
		JWTSecret:     getenv("STATUSPAGE_JWT_SECRET", DefaultJWTSecret),
		TokenTTL:      mustDuration("STATUSPAGE_TOKEN_TTL", 2*time.Hour),

		LoginBurst:     getenvInt("STATUSPAGE_LOGIN_BURST", 0),
		LoginPerMinute: getenvInt("STATUSPAGE_LOGIN_PER_MINUTE", 5),

		// Storage
		Store:    strings.ToLower(getenv("STATUSPAGE_STORE", StoreRedis)),
		SeedFile: getenv("STATUSPAGE_SEED_FILE", ""),

		// Redis settings
		RedisAddr:           getenv("STATUSPAGE_REDIS_ADDR", ""),
		RedisUser:           getenv("STATUSPAGE_REDIS_USERNAME", ""),
		RedisPassword:       getenv("STATUSPAGE_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("STATUSPAGE_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedCIDRS: splitAndTrim(getenv("STATUSPAGE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("STATUSPAGE_TRUST_PROXY", false),
	}

	switch cfg.Store {
	case StoreRedis:
		cfg.RedisAddr = requireEnv("STATUSPAGE_REDIS_ADDR")
	case StoreMemory:
	default:
		panic(fmt.Sprintf("❌ FATAL: STATUSPAGE_STORE must be %q or %q, got %q", StoreRedis, StoreMemory, cfg.Store))
	}

	if cfg.TokenTTL <= 0 {
		panic("❌ FATAL: STATUSPAGE_TOKEN_TTL must be positive")
	}
	if cfg.AdminUser == "" {
		panic("❌ FATAL: STATUSPAGE_ADMIN_USER must not be empty")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	const redacted = "***REDACTED***"
	for _, s := range []*string{&cp.AdminPass, &cp.AdminPassHash, &cp.JWTSecret, &cp.RedisPassword} {
		if *s != "" {
			*s = redacted
		}
	}
	return cp
}

// DefaultSecret reports whether tokens are signed with the development secret.
func (c *Config) DefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// normalizePrefix turns "api/", "/api/" and "/api" into "/api". An empty
// value or "/" mounts the API at the root.
func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

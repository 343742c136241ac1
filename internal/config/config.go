// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DatabaseURL is the Postgres connection string. Empty means demo mode:
	// the static catalog is served and admin writes are simulated.
	DatabaseURL string

	// MigrateOnStart applies pending migrations before serving.
	MigrateOnStart bool

	// RemoteTimeout bounds each catalog fetch from the store. Defaults to 3s.
	RemoteTimeout time.Duration

	// RedisURL enables the snapshot cache when set together with a
	// positive SnapshotTTL.
	RedisURL    string
	SnapshotTTL time.Duration

	// Admin account. An empty AdminPasswordHash disables admin login.
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	JWTTTL            time.Duration

	// WhatsAppNumber receives booking and contact inquiries.
	WhatsAppNumber string

	// S3Bucket enables S3 image uploads; without it uploads return a
	// placeholder URL.
	S3Bucket        string
	S3Region        string
	S3PublicBaseURL string

	// MaxBodyBytes caps request bodies, including image uploads.
	MaxBodyBytes int64
}

// DemoMode reports whether no store is configured.
func (c Config) DemoMode() bool {
	return c.DatabaseURL == ""
}

// CacheEnabled reports whether snapshots should be cached in Redis.
func (c Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.SnapshotTTL > 0
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory, if present, is loaded first; real
// environment variables take precedence over it.
// Returns an error naming every variable that is malformed or missing.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: .env: %w", err)
	}

	var p parser
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MigrateOnStart:    p.bool("MIGRATE_ON_START", false),
		RemoteTimeout:     p.duration("REMOTE_TIMEOUT", 3*time.Second),
		RedisURL:          os.Getenv("REDIS_URL"),
		SnapshotTTL:       p.duration("SNAPSHOT_TTL", 0),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTTTL:            p.duration("JWT_TTL", 12*time.Hour),
		WhatsAppNumber:    getEnv("WHATSAPP_NUMBER", "+91 97401 74089"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          os.Getenv("S3_REGION"),
		S3PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
		MaxBodyBytes:      p.int64("MAX_BODY_BYTES", 5<<20),
	}

	if cfg.AdminPasswordHash != "" && cfg.JWTSecret == "" {
		p.missing = append(p.missing, "JWT_SECRET")
	}
	if cfg.MigrateOnStart && cfg.DatabaseURL == "" {
		p.missing = append(p.missing, "DATABASE_URL")
	}

	if err := p.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parser collects every malformed or missing variable so Load can report
// them all at once.
type parser struct {
	invalid []string
	missing []string
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return d
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return b
}

func (p *parser) int64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return n
}

func (p *parser) err() error {
	var msgs []string
	if len(p.missing) > 0 {
		msgs = append(msgs, "required environment variables not set: "+strings.Join(p.missing, ", "))
	}
	if len(p.invalid) > 0 {
		msgs = append(msgs, "invalid environment variables: "+strings.Join(p.invalid, ", "))
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, "; "))
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oaslint/report"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Validate tool defaults.
	ValidateMode       report.Mode
	ValidateStrict     bool
	ValidateNoWarnings bool

	// Result limits.
	ResultLimit   int
	MaxLimit      int
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASLINT_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASLINT_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASLINT_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASLINT_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASLINT_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASLINT_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ValidateMode:       envMode("OASLINT_MCP_MODE"),
		ValidateStrict:     envBool("OASLINT_MCP_STRICT", false),
		ValidateNoWarnings: envBool("OASLINT_MCP_NO_WARNINGS", false),
		ResultLimit:        envInt("OASLINT_MCP_LIMIT", 100),
		MaxLimit:           envInt("OASLINT_MCP_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("OASLINT_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envMode(key string) report.Mode {
	v := os.Getenv(key)
	m, err := report.ParseModeName(v)
	if err != nil {
		slog.Warn("invalid mode env var, using default", "key", key, "value", v, "default", report.ModeFull.String())
		return report.ModeFull
	}
	return m
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

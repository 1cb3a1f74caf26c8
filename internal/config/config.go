// Package config provides centralized configuration loaded from environment
// variables. Shared by every cmd/gridironlabs subcommand.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Table names match the processed Parquet files
// --------------------------------------------------------------------------

const (
	PlayersTable = "players"
	TeamsTable   = "teams"
	CoachesTable = "coaches"
	GamesTable   = "games"
)

// Tables lists every processed table in load order.
var Tables = []string{PlayersTable, TeamsTable, CoachesTable, GamesTable}

// --------------------------------------------------------------------------
// Paths: filesystem layout rooted at GRIDIRONLABS_ROOT
// --------------------------------------------------------------------------

// Paths holds the filesystem locations used throughout the app.
type Paths struct {
	Root          string
	DataRaw       string
	DataInterim   string
	DataProcessed string
	DataExternal  string
	Cache         string
	Logs          string
}

// NewPaths derives the standard layout under root.
func NewPaths(root string) Paths {
	data := filepath.Join(root, "data")
	return Paths{
		Root:          root,
		DataRaw:       filepath.Join(data, "raw"),
		DataInterim:   filepath.Join(data, "interim"),
		DataProcessed: filepath.Join(data, "processed"),
		DataExternal:  filepath.Join(data, "external"),
		Cache:         filepath.Join(root, ".cache"),
		Logs:          filepath.Join(root, "logs"),
	}
}

// EnsureDirectories creates every directory in the layout.
func (p Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataRaw, p.DataInterim, p.DataProcessed, p.DataExternal, p.Cache, p.Logs} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	Paths Paths

	Environment       string // dev, staging, production
	EnableScraping    bool
	EnableLiveRefresh bool
	UITheme           string
	LogLevel          string

	// Outbound HTTP (data source adapters)
	HTTPTimeout   time.Duration
	MaxHTTPRetry  int
	RetryBackoff  time.Duration
	SchemaVersion string

	// API server
	APIHost string
	APIPort int

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool

	// Nav bar matchup rotation
	MatchupInterval time.Duration

	// Live refresh polling of processed tables
	RefreshInterval time.Duration

	// Settings store (sqlite file)
	SettingsPath string

	// Postgres export
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	root := envOr("GRIDIRONLABS_ROOT", "")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve GRIDIRONLABS_ROOT: %w", err)
	}
	paths := NewPaths(root)

	timeout, err := envFloat("GRIDIRONLABS_HTTP_TIMEOUT", 10)
	if err != nil {
		return nil, err
	}
	backoff, err := envFloat("GRIDIRONLABS_RETRY_BACKOFF", 0.5)
	if err != nil {
		return nil, err
	}

	return &Config{
		Paths: paths,

		Environment:       envOr("GRIDIRONLABS_ENV", "dev"),
		EnableScraping:    envBool("GRIDIRONLABS_ENABLE_SCRAPING", false),
		EnableLiveRefresh: envBool("GRIDIRONLABS_ENABLE_LIVE_REFRESH", false),
		UITheme:           envOr("GRIDIRONLABS_UI_THEME", "dark"),
		LogLevel:          envOr("GRIDIRONLABS_LOG_LEVEL", "INFO"),

		HTTPTimeout:   seconds(timeout),
		MaxHTTPRetry:  envInt("GRIDIRONLABS_MAX_HTTP_RETRIES", 3),
		RetryBackoff:  seconds(backoff),
		SchemaVersion: envOr("GRIDIRONLABS_SCHEMA_VERSION", "v0"),

		APIHost: envOr("GRIDIRONLABS_API_HOST", "127.0.0.1"),
		APIPort: envInt("GRIDIRONLABS_API_PORT", 8000),

		CORSAllowOrigins: envList("GRIDIRONLABS_CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("GRIDIRONLABS_RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("GRIDIRONLABS_RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("GRIDIRONLABS_RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("GRIDIRONLABS_CACHE_ENABLED", true),

		MatchupInterval: time.Duration(envInt("GRIDIRONLABS_MATCHUP_INTERVAL", 6)) * time.Second,
		RefreshInterval: time.Duration(envInt("GRIDIRONLABS_REFRESH_INTERVAL", 30)) * time.Second,

		SettingsPath: envOr("GRIDIRONLABS_SETTINGS_PATH", filepath.Join(paths.Cache, "settings.db")),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("GRIDIRONLABS_DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("GRIDIRONLABS_DB_POOL_MAX_CONNS", 4),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the host:port the API server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// envFloat fails loudly: a malformed timeout is a configuration mistake,
// not something to silently default.
func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return f, nil
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

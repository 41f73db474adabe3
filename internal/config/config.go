// Package config defines all configuration structures for the GrantsDB
// service.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// RedisConfig holds Redis connection parameters for the optional cache backend.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// Cache backend selectors.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// CacheConfig selects and tunes the cache backend used for derived results
// such as category tallies.
type CacheConfig struct {
	Backend    string        `mapstructure:"backend"` // "memory" | "redis"
	DefaultTTL time.Duration `mapstructure:"default_ttl"`
	TallyTTL   time.Duration `mapstructure:"tally_ttl"`
	Redis      RedisConfig   `mapstructure:"redis"`
}

// MatchingConfig holds the classification windows and the match-rate
// threshold used by dashboards and tallies.
type MatchingConfig struct {
	// ReferenceDate pins "today" to a fixed ISO date (demo datasets ship with
	// deadlines relative to it).  Empty means use the wall clock.
	ReferenceDate string `mapstructure:"reference_date"`

	// ClosingSoonDays is the window, in days, within which a dated deadline
	// is flagged as closing soon in list and detail views.
	ClosingSoonDays int `mapstructure:"closing_soon_days"`

	// UpcomingDays is the wider window used by the dashboard's expiring list.
	UpcomingDays int `mapstructure:"upcoming_days"`

	// MatchThreshold is the exclusive lower bound on a relation's match rate
	// for it to count toward category tallies.
	MatchThreshold int `mapstructure:"match_threshold"`

	// DashboardNewCount caps the dashboard's newest-subsidies list.
	DashboardNewCount int `mapstructure:"dashboard_new_count"`
}

// ProposalConfig holds PDF rendering parameters.
type ProposalConfig struct {
	FontPath   string `mapstructure:"font_path"`
	FontFamily string `mapstructure:"font_family"`
	PageSize   string `mapstructure:"page_size"` // "A4" | "Letter"
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the service.  Every
// infrastructure component and application service reads its settings from
// the relevant sub-struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Matching MatchingConfig `mapstructure:"matching"`
	Proposal ProposalConfig `mapstructure:"proposal"`
}

// ReferenceTime parses MatchingConfig.ReferenceDate.  The second return value
// is false when no fixed reference date is configured or it does not parse,
// in which case callers fall back to the wall clock.
func (m MatchingConfig) ReferenceTime() (time.Time, bool) {
	if m.ReferenceDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", m.ReferenceDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Cache
	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("config: cache.redis.addr is required when cache.backend is redis")
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("config: cache.redis.db must be >= 0, got %d", c.Cache.Redis.DB)
		}
	default:
		return fmt.Errorf("config: cache.backend %q is invalid; expected memory|redis", c.Cache.Backend)
	}

	// Matching
	if c.Matching.ClosingSoonDays < 0 {
		return fmt.Errorf("config: matching.closing_soon_days must be >= 0, got %d", c.Matching.ClosingSoonDays)
	}
	if c.Matching.UpcomingDays < c.Matching.ClosingSoonDays {
		return fmt.Errorf("config: matching.upcoming_days %d must be >= matching.closing_soon_days %d",
			c.Matching.UpcomingDays, c.Matching.ClosingSoonDays)
	}
	if c.Matching.MatchThreshold < 0 || c.Matching.MatchThreshold > 100 {
		return fmt.Errorf("config: matching.match_threshold %d is out of range [0, 100]", c.Matching.MatchThreshold)
	}
	if c.Matching.DashboardNewCount < 1 {
		return fmt.Errorf("config: matching.dashboard_new_count must be >= 1, got %d", c.Matching.DashboardNewCount)
	}
	if c.Matching.ReferenceDate != "" {
		if _, err := time.Parse("2006-01-02", c.Matching.ReferenceDate); err != nil {
			return fmt.Errorf("config: matching.reference_date %q is not an ISO date: %w", c.Matching.ReferenceDate, err)
		}
	}

	// Proposal
	switch c.Proposal.PageSize {
	case "A4", "Letter":
	default:
		return fmt.Errorf("config: proposal.page_size %q is invalid; expected A4|Letter", c.Proposal.PageSize)
	}

	return nil
}

// Package config provides configuration loading, defaults, and validation for
// the GrantsDB service.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultCacheBackend = "memory"
	DefaultRedisAddr    = "localhost:6379"
	DefaultKeyPrefix    = "grantsdb:"

	// DefaultReferenceDate pins the demo dataset's "today".
	DefaultReferenceDate = "2025-08-20"

	DefaultClosingSoonDays   = 30
	DefaultUpcomingDays      = 90
	DefaultMatchThreshold    = 70
	DefaultDashboardNewCount = 3

	DefaultProposalFontFamily = "Helvetica"
	DefaultProposalPageSize   = "A4"
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must be called
// after unmarshalling raw config data and before Validate().
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.DefaultTTL == 0 {
		cfg.Cache.DefaultTTL = 5 * time.Minute
	}
	if cfg.Cache.TallyTTL == 0 {
		cfg.Cache.TallyTTL = 30 * time.Second
	}
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.Cache.Redis.DialTimeout == 0 {
		cfg.Cache.Redis.DialTimeout = 5 * time.Second
	}

	// ── Matching ──────────────────────────────────────────────────────────────
	if cfg.Matching.ReferenceDate == "" {
		cfg.Matching.ReferenceDate = DefaultReferenceDate
	}
	if cfg.Matching.ClosingSoonDays == 0 {
		cfg.Matching.ClosingSoonDays = DefaultClosingSoonDays
	}
	if cfg.Matching.UpcomingDays == 0 {
		cfg.Matching.UpcomingDays = DefaultUpcomingDays
	}
	if cfg.Matching.MatchThreshold == 0 {
		cfg.Matching.MatchThreshold = DefaultMatchThreshold
	}
	if cfg.Matching.DashboardNewCount == 0 {
		cfg.Matching.DashboardNewCount = DefaultDashboardNewCount
	}

	// ── Proposal ──────────────────────────────────────────────────────────────
	if cfg.Proposal.FontFamily == "" {
		cfg.Proposal.FontFamily = DefaultProposalFontFamily
	}
	if cfg.Proposal.PageSize == "" {
		cfg.Proposal.PageSize = DefaultProposalPageSize
	}
}

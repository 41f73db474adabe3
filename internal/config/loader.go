package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all service settings.
const envPrefix = "GRANTSDB"

// newViper builds a pre-configured Viper instance with the service's standard
// settings: YAML file type, GRANTSDB_ env prefix, automatic env binding, and a
// key replacer that maps "." → "_" so that nested keys like "server.port"
// resolve to "GRANTSDB_SERVER_PORT".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindKeys(v)
	return v
}

// bindKeys makes every known configuration key visible to Unmarshal even when
// it appears only as an environment variable and not in a config file.
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.mode",
		"server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
		"log.level", "log.format", "log.output",
		"cache.backend", "cache.default_ttl", "cache.tally_ttl",
		"cache.redis.addr", "cache.redis.password", "cache.redis.db",
		"cache.redis.pool_size", "cache.redis.dial_timeout",
		"cache.redis.read_timeout", "cache.redis.write_timeout",
		"cache.redis.key_prefix",
		"matching.reference_date", "matching.closing_soon_days",
		"matching.upcoming_days", "matching.match_threshold",
		"matching.dashboard_new_count",
		"proposal.font_path", "proposal.font_family", "proposal.page_size",
	} {
		_ = v.BindEnv(key)
	}
}

// Load reads the YAML file at configPath, merges any GRANTSDB_* environment
// variable overrides, applies service defaults for unset fields, and
// validates the result.  It returns a fully-populated *Config or a
// descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from GRANTSDB_* environment variables,
// with no config file required.  This is the preferred loading strategy for
// containerised (12-factor) deployments.
//
// Environment variable naming convention:
//
//	GRANTSDB_<SECTION>_<FIELD>   e.g.  GRANTSDB_SERVER_PORT, GRANTSDB_CACHE_BACKEND
func LoadFromEnv() (*Config, error) {
	v := newViper()
	// No config file — rely solely on env vars and defaults.
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

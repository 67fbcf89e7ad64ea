// Package config loads the engine's configuration, layering a YAML file
// under environment variable overrides and an optional .env file — the same
// viper + godotenv shape the teacher's internal/config uses, adapted to the
// policy/storage/logging concerns this engine has instead of risk/budget/sync.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all engine configuration.
type Config struct {
	Policy  PolicyConfig  `yaml:"policy"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// PolicyConfig holds the View Builder and Analysis Aggregator tunables.
type PolicyConfig struct {
	// PolicyVersions maps a policy table name to the version string stamped
	// into every SuperNode/SuperEdge id derived under it (spec §4.1).
	PolicyVersions map[string]string `yaml:"policy_versions" mapstructure:"policy_versions"`
	// NearCriticalAlpha is the slack-fraction threshold (α) below which a
	// path counts as "near critical" rather than merely non-critical.
	NearCriticalAlpha float64 `yaml:"near_critical_alpha" mapstructure:"near_critical_alpha"`
	CriticalSlackNS   float64 `yaml:"critical_slack_ns" mapstructure:"critical_slack_ns"`
	WarnSlackNS       float64 `yaml:"warn_slack_ns" mapstructure:"warn_slack_ns"`
}

// StorageConfig holds the local embedded cache paths.
type StorageConfig struct {
	BlobCachePath  string `yaml:"blob_cache_path" mapstructure:"blob_cache_path"`
	QueryCachePath string `yaml:"query_cache_path" mapstructure:"query_cache_path"`
	SnapshotDir    string `yaml:"snapshot_dir" mapstructure:"snapshot_dir"`
}

// LoggingConfig controls the diagnostics channel.
type LoggingConfig struct {
	JSONFormat bool `yaml:"json_format" mapstructure:"json_format"`
	Debug      bool `yaml:"debug"`
}

// Default returns the engine's default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".dkg")
	return &Config{
		Policy: PolicyConfig{
			PolicyVersions:    map[string]string{"default": "v1"},
			NearCriticalAlpha: 0.10,
			CriticalSlackNS:   0.0,
			WarnSlackNS:       0.2,
		},
		Storage: StorageConfig{
			BlobCachePath:  filepath.Join(base, "blobs.db"),
			QueryCachePath: filepath.Join(base, "query.db"),
			SnapshotDir:    filepath.Join(base, "snapshots"),
		},
		Logging: LoggingConfig{
			JSONFormat: true,
			Debug:      false,
		},
	}
}

// Load layers a YAML config file, environment variables (prefix "DKG_"),
// and an optional .env overlay on top of Default().
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("policy", cfg.Policy)
	v.SetDefault("storage", cfg.Storage)
	v.SetDefault("logging", cfg.Logging)

	v.SetEnvPrefix("DKG")
	v.AutomaticEnv()

	explicitMissing := false
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			explicitMissing = true
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dkg")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".dkg"))
	}

	if !explicitMissing {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}
	homeDir, _ := os.UserHomeDir()
	home := filepath.Join(homeDir, ".dkg", ".env")
	if _, err := os.Stat(home); err == nil {
		godotenv.Load(home)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DKG_SNAPSHOT_DIR"); v != "" {
		cfg.Storage.SnapshotDir = v
	}
	if v := os.Getenv("DKG_BLOB_CACHE_PATH"); v != "" {
		cfg.Storage.BlobCachePath = v
	}
}

// Package config loads gsp's own settings: which sources to read the
// provider record from, where the cache lives, and logging retention.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSource is read when no source is configured.
const DefaultSource = "builtin://gsp"

// GlobalConfig holds settings from ~/.gsp/config.yaml.
type GlobalConfig struct {
	// Sources are read in order and merged; later documents override
	// earlier ones.
	Sources []string `yaml:"sources"`

	// Provider is the ID used to find a cached record when every source
	// fails. Empty means the first cached provider.
	Provider string `yaml:"provider"`

	// Cache is the SQLite cache path.
	Cache string `yaml:"cache"`

	Watch WatchConfig `yaml:"watch"`
	Debug DebugConfig `yaml:"debug"`
}

// WatchConfig controls `gsp watch`.
type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// DebugConfig controls the JSONL debug logs.
type DebugConfig struct {
	RetentionDays int `yaml:"retention_days"`
}

// DefaultGlobalConfig returns the default global configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Sources: []string{DefaultSource},
		Cache:   filepath.Join(GlobalConfigDir(), "cache.db"),
		Watch:   WatchConfig{Interval: 30 * time.Second},
		Debug:   DebugConfig{RetentionDays: 14},
	}
}

// LoadGlobal reads ~/.gsp/config.yaml, loads .env files and applies
// GSP_* environment overrides. A missing config file is not an error.
func LoadGlobal() (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	dir := GlobalConfigDir()
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Join(dir, "config.yaml"), err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := LoadEnvFiles(".env", filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if len(cfg.Sources) == 0 {
		cfg.Sources = []string{DefaultSource}
	}
	return cfg, nil
}

// LoadEnvFiles loads each existing file into the process environment.
// Variables already set win over file contents, and earlier files win over
// later ones.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

func applyEnv(cfg *GlobalConfig) {
	if v := os.Getenv("GSP_SOURCES"); v != "" {
		var sources []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sources = append(sources, s)
			}
		}
		cfg.Sources = sources
	}
	if v := os.Getenv("GSP_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("GSP_CACHE"); v != "" {
		cfg.Cache = v
	}
	if v := os.Getenv("GSP_WATCH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Watch.Interval = d
		}
	}
	if v := os.Getenv("GSP_DEBUG_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Debug.RetentionDays = days
		}
	}
}

// GlobalConfigDir returns the path to ~/.gsp, or GSP_HOME when set.
func GlobalConfigDir() string {
	if dir := os.Getenv("GSP_HOME"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".gsp")
	}
	return filepath.Join(homeDir, ".gsp")
}

// DebugDir returns the directory for JSONL debug logs.
func DebugDir() string {
	return filepath.Join(GlobalConfigDir(), "debug")
}

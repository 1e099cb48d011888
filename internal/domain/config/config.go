// Package config implements the 3-layer configuration hierarchy: a global
// config, per-project configs keyed by name, and named contexts inside each
// project. Later layers override earlier ones. The resolved result is a plain
// value passed into the core by argument; nothing here is process-global.
//
// On disk:
//
//	<config-dir>/
//	  config.toml                 global configuration
//	  projects/<name>/
//	    config.toml               project configuration (records the tree path)
//	    contexts/<ctx>/
//	      config.toml             context configuration
//	      ignore                  context ignore patterns
//	      storage/                context-owned repository
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/felixgeelhaar/mote/internal/domain/storage"
)

// Default values for the storage and snapshot sections.
const (
	DefaultCompressionLevel = 3
	DefaultMaxSnapshots     = 1000
	DefaultMaxAgeDays       = 30
	DefaultGCAuto           = 100
)

// DefaultIgnoreFile is the ignore file name used when none is configured.
const DefaultIgnoreFile = ".moteignore"

// StorageConfig selects where the repository lives.
type StorageConfig struct {
	LocationStrategy storage.Strategy `toml:"location_strategy"`
	CompressionLevel int              `toml:"compression_level"`
}

// SnapshotConfig controls retention and garbage collection.
type SnapshotConfig struct {
	AutoCleanup   bool `toml:"auto_cleanup"`
	MaxSnapshots  int  `toml:"max_snapshots"`
	MaxAgeDays    int  `toml:"max_age_days"`
	GCAutoEnabled bool `toml:"gc_auto_enabled"`
	GCAuto        int  `toml:"gc_auto"`
}

// IgnoreConfig names the ignore file.
type IgnoreConfig struct {
	IgnoreFile string `toml:"ignore_file"`
}

// Config is one layer of settings, or the merged result of all layers.
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Ignore   IgnoreConfig   `toml:"ignore"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			LocationStrategy: storage.StrategyRoot,
			CompressionLevel: DefaultCompressionLevel,
		},
		Snapshot: SnapshotConfig{
			AutoCleanup:  true,
			MaxSnapshots: DefaultMaxSnapshots,
			MaxAgeDays:   DefaultMaxAgeDays,
			GCAuto:       DefaultGCAuto,
		},
		Ignore: IgnoreConfig{
			IgnoreFile: DefaultIgnoreFile,
		},
	}
}

// DefaultDir returns the default config directory, ~/.config/mote or the
// platform equivalent.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".config", "mote")
	}
	return filepath.Join(base, "mote")
}

// LoadFromPath reads one config layer. A missing file yields the defaults.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveDefault writes the default global config into configDir unless one
// already exists.
func SaveDefault(configDir string) error {
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	cfg := Default()
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// merge overrides target fields with source fields that differ from the
// defaults, so an untouched layer never masks an explicit lower-layer value.
func merge(target *Config, source Config) {
	def := Default()

	if source.Storage.LocationStrategy != def.Storage.LocationStrategy {
		target.Storage.LocationStrategy = source.Storage.LocationStrategy
	}
	if source.Storage.CompressionLevel != def.Storage.CompressionLevel {
		target.Storage.CompressionLevel = source.Storage.CompressionLevel
	}

	if source.Snapshot.AutoCleanup != def.Snapshot.AutoCleanup {
		target.Snapshot.AutoCleanup = source.Snapshot.AutoCleanup
	}
	if source.Snapshot.MaxSnapshots != def.Snapshot.MaxSnapshots {
		target.Snapshot.MaxSnapshots = source.Snapshot.MaxSnapshots
	}
	if source.Snapshot.MaxAgeDays != def.Snapshot.MaxAgeDays {
		target.Snapshot.MaxAgeDays = source.Snapshot.MaxAgeDays
	}
	if source.Snapshot.GCAutoEnabled != def.Snapshot.GCAutoEnabled {
		target.Snapshot.GCAutoEnabled = source.Snapshot.GCAutoEnabled
	}
	if source.Snapshot.GCAuto != def.Snapshot.GCAuto {
		target.Snapshot.GCAuto = source.Snapshot.GCAuto
	}

	if source.Ignore.IgnoreFile != def.Ignore.IgnoreFile {
		target.Ignore.IgnoreFile = source.Ignore.IgnoreFile
	}
}

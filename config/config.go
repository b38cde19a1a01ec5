// Package config loads layered configuration for the doccorpus tools:
// defaults, then .doccorpus.yaml, then DOCCORPUS_* environment variables,
// then command-line flags bound by the caller.
package config

import (
	"time"
)

// Config is the complete tool configuration.
type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Decode DecodeConfig `mapstructure:"decode"`
	Build  BuildConfig  `mapstructure:"build"`
	Store  StoreConfig  `mapstructure:"store"`
	Log    LogConfig    `mapstructure:"log"`
	Watch  WatchConfig  `mapstructure:"watch"`
}

// InputConfig selects the unit containers to read.
type InputConfig struct {
	Dir     string   `mapstructure:"dir" validate:"required"`
	Include []string `mapstructure:"include" validate:"min=1,dive,required"`
	Exclude []string `mapstructure:"exclude" validate:"dive,required"`
}

// DecodeConfig tunes the container decoder.
type DecodeConfig struct {
	// Version is the expected schema version; zero selects the current one.
	Version uint64 `mapstructure:"version"`
}

// BuildConfig tunes the build pipeline.
type BuildConfig struct {
	// Workers bounds parallel decoding and merging; zero means GOMAXPROCS.
	Workers int `mapstructure:"workers" validate:"gte=0"`
}

// StoreConfig locates the corpus database.
type StoreConfig struct {
	Path      string `mapstructure:"path" validate:"required"`
	CacheSize int    `mapstructure:"cache_size" validate:"gt=0"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"gte=0"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir:     ".",
			Include: []string{"**/*.docs"},
		},
		Build: BuildConfig{},
		Store: StoreConfig{
			Path:      "doccorpus.db",
			CacheSize: 1024,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

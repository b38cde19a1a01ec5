package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/wippyai/doccorpus/errors"
)

// FileName is the configuration file looked up in the root directory,
// without its extension.
const FileName = ".doccorpus"

// EnvPrefix prefixes every environment override, e.g. DOCCORPUS_STORE_PATH.
const EnvPrefix = "DOCCORPUS"

var keys = []string{
	"input.dir",
	"input.include",
	"input.exclude",
	"decode.version",
	"build.workers",
	"store.path",
	"store.cache_size",
	"log.level",
	"log.format",
	"watch.debounce",
}

// Loader reads configuration for one root directory. Callers may bind flags
// through Viper before calling Load.
type Loader struct {
	v *viper.Viper
}

// NewLoader prepares a loader reading .doccorpus.yaml from rootDir.
func NewLoader(rootDir string) *Loader {
	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(rootDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	setDefaults(v)
	return &Loader{v: v}
}

// SetFile reads configuration from an explicit file instead of searching.
func (l *Loader) SetFile(path string) {
	l.v.SetConfigFile(path)
}

// Viper exposes the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load merges every source and validates the result. A missing
// configuration file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.IO(errors.PhaseConfig, "read config file", err)
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "unmarshal config")
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input.dir", d.Input.Dir)
	v.SetDefault("input.include", d.Input.Include)
	v.SetDefault("input.exclude", d.Input.Exclude)
	v.SetDefault("decode.version", d.Decode.Version)
	v.SetDefault("build.workers", d.Build.Workers)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.cache_size", d.Store.CacheSize)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

var validate = validator.New()

// Validate checks field constraints and reports every violation at once.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "validate config")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Value(cfg).
		Detail("invalid configuration: %s", strings.Join(msgs, "; ")).
		Build()
}

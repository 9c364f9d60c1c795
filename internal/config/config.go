// Package config resolves medcorpus settings from defaults, an optional
// medcorpus.yaml, MEDCORPUS_* environment variables, and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "MEDCORPUS"
	ConfigFileName = "medcorpus"
)

type Config struct {
	CorpusDir          string `mapstructure:"corpus_dir" validate:"required"`
	DBPath             string `mapstructure:"db_path" validate:"required"`
	Strict             bool   `mapstructure:"strict"`
	LogLevel           string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat          string `mapstructure:"log_format" validate:"required,oneof=auto console json"`
	Workers            int    `mapstructure:"workers" validate:"gte=1,lte=64"`
	CheckSubtopicSlugs bool   `mapstructure:"check_subtopic_slugs"`
	EnforceLifecycle   bool   `mapstructure:"enforce_lifecycle"`
}

// LoadOptions controls where Load looks beyond defaults and environment.
type LoadOptions struct {
	// File is an explicit config file. When empty, medcorpus.yaml is read
	// from the working directory or ~/.medcorpus if present.
	File string
	// Flags, when set, overrides settings for every changed flag listed in
	// FlagKeys.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"corpus":     "corpus_dir",
	"db":         "db_path",
	"strict":     "strict",
	"log-level":  "log_level",
	"log-format": "log_format",
	"workers":    "workers",
}

var configValidator = validator.New()

func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, opts.File); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and vocabularies.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (%v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("corpus_dir", "content")
	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("strict", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "auto")
	v.SetDefault("workers", 4)
	v.SetDefault("check_subtopic_slugs", false)
	v.SetDefault("enforce_lifecycle", false)
}

func readConfigFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".medcorpus"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// DefaultDBPath is ~/.medcorpus/medcorpus.db, or medcorpus.db in the working
// directory when no home directory is known.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "medcorpus.db"
	}
	return filepath.Join(home, ".medcorpus", "medcorpus.db")
}

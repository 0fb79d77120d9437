// Package config loads settings for the datasync CLI.
//
// Sources are layered, lowest precedence first: built-in defaults, the
// config file (datasync.yaml), a .env file, DATASYNC_* environment variables
// and finally command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. DATASYNC_BASE_URL.
	EnvPrefix = "DATASYNC"

	configName = "datasync"
	configType = "yaml"
)

// Config keys. Flag names use dashes; keys use underscores.
const (
	KeyBaseURL   = "base_url"
	KeyFormat    = "format"
	KeyTimeout   = "timeout"
	KeyToken     = "token"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

// Config is the resolved CLI configuration.
type Config struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Format    string        `mapstructure:"format" validate:"oneof=json yaml"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Token     string        `mapstructure:"token"`
	LogLevel  string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string        `mapstructure:"log_format" validate:"oneof=text json"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BaseURL:   "http://localhost",
		Format:    "json",
		Timeout:   30 * time.Second,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Options control where Load looks.
type Options struct {
	// ConfigFile is an explicit config file. When empty, datasync.yaml is
	// looked up in the working directory and a missing file is not an error.
	ConfigFile string

	// EnvFiles are dotenv files loaded into the process environment. When
	// empty, .env is loaded if present.
	EnvFiles []string

	// Flags, when set, override every other source for flags the user
	// changed.
	Flags *pflag.FlagSet
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load resolves and validates the configuration.
func Load(opts Options) (*Config, error) {
	if len(opts.EnvFiles) > 0 {
		if err := godotenv.Load(opts.EnvFiles...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	} else {
		// Load .env file if it exists (ignore error if not found)
		_ = godotenv.Load()
	}

	v := viper.New()
	defaults := Defaults()
	v.SetDefault(KeyBaseURL, defaults.BaseURL)
	v.SetDefault(KeyFormat, defaults.Format)
	v.SetDefault(KeyTimeout, defaults.Timeout)
	v.SetDefault(KeyToken, "")
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogFormat, defaults.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindFlags binds each flag whose name maps to a config key.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isKey(key) {
			return
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

func isKey(key string) bool {
	switch key {
	case KeyBaseURL, KeyFormat, KeyTimeout, KeyToken, KeyLogLevel, KeyLogFormat:
		return true
	}
	return false
}

// Validate checks cfg and reports the first offending field.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

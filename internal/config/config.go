package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FormatInt  = "int"
	FormatJSON = "json"

	minPrecision = 100
)

// Config holds ambient settings loaded from flags, env, or config file.
// The computed values themselves only come from positional arguments.
type Config struct {
	LogLevel  string
	Format    string
	Precision int
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EMAUPDATE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "warn")
	v.SetDefault("format", FormatInt)
	v.SetDefault("precision", minPrecision)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("emaupdate")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		LogLevel:  v.GetString("log-level"),
		Format:    strings.ToLower(strings.TrimSpace(v.GetString("format"))),
		Precision: v.GetInt("precision"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks output format and precision.
func (c Config) Validate() error {
	switch c.Format {
	case FormatInt, FormatJSON:
	default:
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if c.Precision < minPrecision || c.Precision > math.MaxInt32 {
		return fmt.Errorf("precision must be between %d and %d", minPrecision, math.MaxInt32)
	}
	return nil
}

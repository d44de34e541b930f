// Package config provides configuration loading for the syntacalc command.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/syntacalc"
)

// Config represents the calculator configuration.
type Config struct {
	Calc    CalcConfig    `toml:"calc"`
	Logging LoggingConfig `toml:"logging"`
}

// CalcConfig contains evaluation settings.
type CalcConfig struct {
	// Precision is the working precision in bits.
	Precision uint `toml:"precision"`
	// Places is the number of decimal places results are rounded to.
	Places int `toml:"places"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	TimeFormat string `toml:"time_format"`
}

// Limits on the calculation settings.
const (
	MaxPrecision = 4096
	MaxPlaces    = 100
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Calc: CalcConfig{
			Precision: syntacalc.DefaultPrec,
			Places:    syntacalc.DefaultPlaces,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "text",
			TimeFormat: "15:04:05.000",
		},
	}
}

// Load loads configuration from a TOML file. Settings missing from the file
// keep their defaults. An empty path or a file that does not exist gives the
// default configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Calc.Precision < 1 || c.Calc.Precision > MaxPrecision {
		return errors.Errorf("precision %d outside 1..%d", c.Calc.Precision, MaxPrecision)
	}
	if c.Calc.Places < 0 || c.Calc.Places > MaxPlaces {
		return errors.Errorf("places %d outside 0..%d", c.Calc.Places, MaxPlaces)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// ContextOptions returns the evaluation options described by the config.
func (c *Config) ContextOptions() []syntacalc.ContextOption {
	return []syntacalc.ContextOption{
		syntacalc.Prec(c.Calc.Precision),
		syntacalc.Places(c.Calc.Places),
	}
}

// Package config loads the carbon CLI configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Store struct {
		Root        string `mapstructure:"root"`
		Compression int    `mapstructure:"compression"`
	} `mapstructure:"store"`
	Diff struct {
		AllowEmpty bool `mapstructure:"allow_empty"`
	} `mapstructure:"diff"`
	Render struct {
		Color string `mapstructure:"color"`
	} `mapstructure:"render"`
}

// Color modes for Render.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Load reads carbon.yaml. If path is empty, ./.carbon and . are searched and a missing file
// leaves the defaults in place. Environment variables prefixed CARBON_ override file values,
// e.g. CARBON_STORE_ROOT.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("store.root", ".carbon")
	v.SetDefault("store.compression", 5)
	v.SetDefault("diff.allow_empty", false)
	v.SetDefault("render.color", ColorAuto)

	v.SetEnvPrefix("carbon")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("carbon")
		v.SetConfigType("yaml")
		v.AddConfigPath("./.carbon")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Render.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("render.color: unknown mode %q", c.Render.Color)
	}
	if c.Store.Compression < 0 || c.Store.Compression > 11 {
		return fmt.Errorf("store.compression: %d is outside 0-11", c.Store.Compression)
	}
	if c.Store.Root == "" {
		return errors.New("store.root is empty")
	}
	return nil
}

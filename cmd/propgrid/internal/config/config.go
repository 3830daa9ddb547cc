// Package config loads the propgrid CLI configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "propgrid"

// Config holds CLI settings.
type Config struct {
	// Grouping shows category headers.
	Grouping bool `mapstructure:"grouping"`
	// LiveSync commits every edit immediately.
	LiveSync bool `mapstructure:"live_sync"`
	// Metadata is an optional YAML metadata file for the demo types.
	Metadata string `mapstructure:"metadata"`
	// LogLevel is a zap level name.
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{Grouping: true, LogLevel: "warn"}
}

// Load reads configuration from path, or from propgrid.yaml in the working
// directory when path is empty. A missing file is not an error. Env var
// overrides use prefix PROPGRID_.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("grouping", def.Grouping)
	v.SetDefault("live_sync", def.LiveSync)
	v.SetDefault("metadata", def.Metadata)
	v.SetDefault("log_level", def.LogLevel)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
	}

	v.SetEnvPrefix("PROPGRID")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

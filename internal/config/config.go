// Package config loads client settings from the config file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Defaults applied when neither the config file nor the environment says
// otherwise. The default API URL matches the backend's dev server.
const (
	DefaultAPIURL  = "http://localhost:5000"
	DefaultTimeout = 30 * time.Second
)

// Config holds the client configuration.
type Config struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"request_timeout"`
}

// Load reads configuration with precedence: env > config file > defaults.
// The file lives at ~/.config/taskdeck/config.json and is optional; a
// malformed file is an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "taskdeck"))
	}

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("request_timeout", DefaultTimeout)

	v.SetEnvPrefix("TASKDECK")
	v.BindEnv("api_url")         //nolint:errcheck // key is non-empty
	v.BindEnv("request_timeout") //nolint:errcheck

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

// Package config provides centralized configuration management for Doorstep.
// Configuration is layered: built-in defaults, an optional YAML config file,
// then DOORSTEP_* environment variables.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const envPrefix = "DOORSTEP"

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// Load reads configuration from the optional config file plus environment
// overrides and decodes it into a typed Config. Safe to call repeatedly
// (e.g. SIGHUP reload).
func Load(cfgFile string) (*Config, error) {
	v := viper.GetViper()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("doorstep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/doorstep")
		v.AddConfigPath("/etc/doorstep")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	configMu.Lock()
	appConfig = &cfg
	configMu.Unlock()

	return &cfg, nil
}

// Get returns the most recently loaded configuration, or nil before Load.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("store.driver", "libsql")
	v.SetDefault("store.path", "./data/doorstep.db")

	v.SetDefault("sessions.edit_limit", 100)
	v.SetDefault("sessions.ttl", 24*time.Hour)
	v.SetDefault("sessions.photos_dir", "./data/brochure_sessions")

	v.SetDefault("pacing.min_interval", 1200*time.Millisecond)

	v.SetDefault("vision.max_image_mb", 10)
	v.SetDefault("vision.allowed_types", []string{"image/jpeg", "image/png", "image/webp"})

	v.SetDefault("lookup.base_url", "https://api.ideal-postcodes.co.uk/v1")
	v.SetDefault("lookup.timeout", 10*time.Second)
	v.SetDefault("lookup.cache_ttl", time.Hour)

	v.SetDefault("throttle.enabled", true)
	v.SetDefault("throttle.rps", 5.0)
	v.SetDefault("throttle.burst", 10)

	v.SetDefault("auth.enabled", false)

	v.SetDefault("branding.templates_file", "./config/agencies.yaml")

	v.SetDefault("logging.level", "info")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if cfg.Sessions.EditLimit <= 0 {
		return fmt.Errorf("sessions.edit_limit must be positive, got %d", cfg.Sessions.EditLimit)
	}
	if cfg.Sessions.TTL <= 0 {
		return fmt.Errorf("sessions.ttl must be positive, got %s", cfg.Sessions.TTL)
	}
	if cfg.Pacing.MinInterval < 0 {
		return fmt.Errorf("pacing.min_interval must not be negative, got %s", cfg.Pacing.MinInterval)
	}
	if cfg.Auth.Enabled && (cfg.Auth.Username == "" || cfg.Auth.Password == "") {
		return fmt.Errorf("auth.enabled requires auth.username and auth.password")
	}
	return nil
}

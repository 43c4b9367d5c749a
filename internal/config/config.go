package config

import (
	"time"

	"github.com/doorstephq/doorstep/internal/ailink"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	Pacing   PacingConfig   `mapstructure:"pacing"`
	AILink   ailink.Config  `mapstructure:"ailink"`
	Vision   VisionConfig   `mapstructure:"vision"`
	Lookup   LookupConfig   `mapstructure:"lookup"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Throttle ThrottleConfig `mapstructure:"throttle"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Branding BrandingConfig `mapstructure:"branding"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// SessionsConfig controls the brochure session ledger.
type SessionsConfig struct {
	EditLimit int           `mapstructure:"edit_limit"`
	TTL       time.Duration `mapstructure:"ttl"`

	// PhotosDir is where decoded session photos are written, one
	// subdirectory per session id.
	PhotosDir string `mapstructure:"photos_dir"`
}

// PacingConfig controls the process-wide vision call pacer.
type PacingConfig struct {
	// MinInterval is the minimum spacing between outbound vision calls.
	// 1.2s was chosen empirically to stay under the provider's burst-rate
	// ceiling when a whole photo set is analyzed concurrently.
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// VisionConfig bounds accepted image uploads.
type VisionConfig struct {
	MaxImageMB   int      `mapstructure:"max_image_mb"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// LookupConfig configures the UK property-data lookups.
type LookupConfig struct {
	IdealPostcodesAPIKey string        `mapstructure:"ideal_postcodes_api_key"`
	BaseURL              string        `mapstructure:"base_url"`
	Timeout              time.Duration `mapstructure:"timeout"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
}

// CacheConfig selects the lookup cache backend. With an empty RedisURL the
// in-process TTL cache is used.
type CacheConfig struct {
	RedisURL string `mapstructure:"redis_url"`
}

// ThrottleConfig configures the per-client request throttle on generation
// routes.
type ThrottleConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// AuthConfig configures the basic-auth gate on the editor routes.
type AuthConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// BrandingConfig points at the agency branding registry file.
type BrandingConfig struct {
	TemplatesFile string `mapstructure:"templates_file"`
}

// LoggingConfig contains logging configuration.
// Valid levels: trace, debug, info, warn, error.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RosterPath points at a YAML/JSON employee snapshot. Empty uses the embedded sample.
	RosterPath string `koanf:"roster_path"`

	// GeoTablePath points at a YAML city -> [lat, lng] table. Empty uses the built-in table.
	GeoTablePath string `koanf:"geo_table_path"`

	// Username and Password are the single set of accepted credentials.
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// MaxSessions bounds live sessions; the oldest is evicted first.
	MaxSessions int `koanf:"max_sessions"`

	// MaxPhotoBytes caps a captured photo upload.
	MaxPhotoBytes int64 `koanf:"max_photo_bytes"`

	// LoginRate and LoginBurst configure the login token bucket. A rate of 0 disables it.
	LoginRate  float64 `koanf:"login_rate"`
	LoginBurst int     `koanf:"login_burst"`

	// AllowedOrigins lists CORS origins for browser clients.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		Username:       "testuser",
		Password:       "Test123",
		MaxSessions:    1000,
		MaxPhotoBytes:  5 << 20,
		LoginRate:      5,
		LoginBurst:     10,
		AllowedOrigins: []string{"*"},
	}
}

package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rotisserie/eris"
)

const (
	envPrefix  = "ROSTER_"
	envConfig  = "ROSTER_CONFIG"
	formatText = "text"
	formatJSON = "json"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ROSTER_CONFIG is set
//  3. env (prefix ROSTER_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, eris.Wrapf(ErrLoadConfig, "read %s: %v", path, err)
		}
	}

	// ROSTER_MAX_SESSIONS -> max_sessions; underscores are kept to match the flat koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, eris.Wrapf(ErrLoadConfig, "environment: %v", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, eris.Wrapf(ErrLoadConfig, "unmarshal: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot run the service.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return eris.Wrap(ErrInvalidConfig, "addr must not be empty")
	case c.Username == "":
		return eris.Wrap(ErrInvalidConfig, "username must not be empty")
	case c.LogFormat != formatText && c.LogFormat != formatJSON:
		return eris.Wrapf(ErrInvalidConfig, "log_format must be %q or %q, got %q", formatText, formatJSON, c.LogFormat)
	case c.MaxPhotoBytes <= 0:
		return eris.Wrap(ErrInvalidConfig, "max_photo_bytes must be positive")
	case c.MaxSessions < 0:
		return eris.Wrapf(ErrInvalidConfig, "max_sessions must not be negative, got %d", c.MaxSessions)
	case c.LoginRate < 0:
		return eris.Wrapf(ErrInvalidConfig, "login_rate must not be negative, got %v", c.LoginRate)
	case c.LoginBurst < 0:
		return eris.Wrapf(ErrInvalidConfig, "login_burst must not be negative, got %d", c.LoginBurst)
	}
	return nil
}

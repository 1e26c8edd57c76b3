package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envOverrides holds the BUYRENT_* environment values.
type envOverrides struct {
	ConfigPath string        `env:"BUYRENT_CONFIG"`
	Theme      string        `env:"BUYRENT_THEME"`
	Currency   string        `env:"BUYRENT_CURRENCY"`
	DBPath     string        `env:"BUYRENT_DB"`
	Addr       string        `env:"BUYRENT_ADDR"`
	Interval   time.Duration `env:"BUYRENT_INTERVAL"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func readEnv() (envOverrides, error) {
	var ov envOverrides
	err := ParseEnv(&ov)
	return ov, err
}

func applyEnv(cfg *Config) error {
	ov, err := readEnv()
	if err != nil {
		return err
	}
	if ov.Theme != "" {
		cfg.Appearance.Theme = ov.Theme
	}
	if ov.Currency != "" {
		cfg.General.Currency = ov.Currency
	}
	if ov.DBPath != "" {
		cfg.Store.Path = ov.DBPath
	}
	if ov.Addr != "" {
		cfg.Server.Addr = ov.Addr
	}
	if ov.Interval > 0 {
		cfg.Server.IntervalSec = int(ov.Interval / time.Second)
		if cfg.Server.IntervalSec < 1 {
			cfg.Server.IntervalSec = 1
		}
	}
	return nil
}

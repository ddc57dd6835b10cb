package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Platform holds process-level settings that never affect simulation rules.
// They only supply defaults for command-line flags.
type Platform struct {
	DBPath   string `env:"HOUSEGUARD_DB"`
	LogLevel string `env:"HOUSEGUARD_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"HOUSEGUARD_LOG_FILE"`
	FPS      int    `env:"HOUSEGUARD_FPS" envDefault:"30"`
}

// LoadPlatform reads Platform from the environment. Empty paths default to
// files under ~/.houseguard.
func LoadPlatform() (Platform, error) {
	var p Platform
	if err := env.Parse(&p); err != nil {
		return Platform{}, fmt.Errorf("config: parse env: %w", err)
	}
	if dir := UserDir(); dir != "" {
		if p.DBPath == "" {
			p.DBPath = filepath.Join(dir, "results.db")
		}
		if p.LogFile == "" {
			p.LogFile = filepath.Join(dir, "houseguard.log")
		}
	}
	if p.FPS <= 0 {
		return Platform{}, fmt.Errorf("config: %w: HOUSEGUARD_FPS must be positive, got %d", ErrInvalid, p.FPS)
	}
	return p, nil
}

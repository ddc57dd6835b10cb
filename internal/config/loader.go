package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search path.
const FileName = "houseguard.yaml"

// Load loads the game configuration.
// An explicit customPath replaces the search and must exist. Otherwise the
// embedded defaults are overlaid by ./configs/houseguard.yaml and then by
// ~/.houseguard/config.yaml when present. Environment overrides apply last.
func Load(customPath string) (Game, error) {
	cfg, err := parse(defaultGameYAML, DefaultGame())
	if err != nil {
		cfg = DefaultGame()
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Game{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if cfg, err = parse(data, cfg); err != nil {
			return Game{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
	} else {
		for _, path := range SearchPaths() {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if cfg, err = parse(data, cfg); err != nil {
				return Game{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Game{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Game{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// SearchPaths returns the implicit config locations, lowest precedence first.
func SearchPaths() []string {
	paths := []string{filepath.Join("configs", FileName)}
	if dir := UserDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "config.yaml"))
	}
	return paths
}

// UserDir returns ~/.houseguard, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".houseguard")
}

// parse decodes data on top of base. Lists present in data replace the
// base lists wholesale.
func parse(data []byte, base Game) (Game, error) {
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// tuningEnv lists the tuning constants that may be overridden from the
// environment. Fields are pre-filled so unset variables keep their value.
type tuningEnv struct {
	DurationSec     int     `env:"HOUSEGUARD_SESSION_DURATION_SEC"`
	VoteStopDelayMs int     `env:"HOUSEGUARD_SESSION_VOTE_STOP_DELAY_MS"`
	LetterDelayMs   int     `env:"HOUSEGUARD_SESSION_LETTER_DELAY_MS"`
	PlayerSpeed     float64 `env:"HOUSEGUARD_PLAYER_SPEED"`
}

// ApplyEnv overrides tuning constants from HOUSEGUARD_* variables.
func ApplyEnv(cfg *Game) error {
	t := tuningEnv{
		DurationSec:     cfg.Session.DurationSec,
		VoteStopDelayMs: cfg.Session.VoteStopDelayMs,
		LetterDelayMs:   cfg.Session.LetterDelayMs,
		PlayerSpeed:     cfg.Player.Speed,
	}
	if err := env.Parse(&t); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	cfg.Session.DurationSec = t.DurationSec
	cfg.Session.VoteStopDelayMs = t.VoteStopDelayMs
	cfg.Session.LetterDelayMs = t.LetterDelayMs
	cfg.Player.Speed = t.PlayerSpeed
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Game) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

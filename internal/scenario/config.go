package scenario

import (
	"fmt"

	"github.com/vovakirdan/houseguard/internal/config"
)

// applyConfig returns base with the scenario's overrides applied and
// validated. Known keys: duration_sec, vote_stop_delay_ms, letter_delay_ms,
// player_speed, player, agents, houses.
func applyConfig(base config.Game, overrides map[string]any) (config.Game, error) {
	cfg := base.Clone()

	for _, key := range sortedKeys(overrides) {
		value := overrides[key]
		var err error

		switch key {
		case "duration_sec":
			err = setInt(&cfg.Session.DurationSec, key, value)
		case "vote_stop_delay_ms":
			err = setInt(&cfg.Session.VoteStopDelayMs, key, value)
		case "letter_delay_ms":
			err = setInt(&cfg.Session.LetterDelayMs, key, value)
		case "player_speed":
			err = setFloat(&cfg.Player.Speed, key, value)
		case "player":
			err = applyPlayer(&cfg.Player, value)
		case "agents":
			cfg.Agents, err = parseAgents(value)
		case "houses":
			cfg.Houses, err = parseHouses(value)
		default:
			err = fmt.Errorf("unknown config key %q", key)
		}
		if err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setInt(dst *int, key string, v any) error {
	n, ok := v.(int)
	if !ok {
		return fmt.Errorf("%s: expected integer, got %v", key, v)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string, v any) error {
	f, ok := numberArg(map[string]any{key: v}, key)
	if !ok {
		return fmt.Errorf("%s: expected number, got %v", key, v)
	}
	*dst = f
	return nil
}

func applyPlayer(p *config.Player, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("player: expected table, got %T", v)
	}
	fields := map[string]*float64{"x": &p.X, "y": &p.Y, "speed": &p.Speed, "width": &p.Width, "height": &p.Height}
	for _, k := range sortedKeys(m) {
		dst, known := fields[k]
		if !known {
			return fmt.Errorf("player: unknown field %q", k)
		}
		if err := setFloat(dst, "player."+k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

func tableList(key string, v any) ([]map[string]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list, got %T", key, v)
	}
	out := make([]map[string]any, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected table, got %T", key, i, item)
		}
		out[i] = m
	}
	return out, nil
}

func parseAgents(v any) ([]config.Agent, error) {
	items, err := tableList("agents", v)
	if err != nil {
		return nil, err
	}
	agents := make([]config.Agent, len(items))
	for i, m := range items {
		a := config.Agent{Name: fmt.Sprintf("destructor%d", i+1)}
		if name, ok := stringArg(m, "name"); ok {
			a.Name = name
		}
		a.X, _ = numberArg(m, "x")
		a.Y, _ = numberArg(m, "y")
		a.Speed, _ = numberArg(m, "speed")
		a.Passive, _ = boolArg(m, "passive")
		agents[i] = a
	}
	return agents, nil
}

func parseHouses(v any) ([]config.House, error) {
	items, err := tableList("houses", v)
	if err != nil {
		return nil, err
	}
	houses := make([]config.House, len(items))
	for i, m := range items {
		h := config.House{Name: fmt.Sprintf("house%d", i+1)}
		if name, ok := stringArg(m, "name"); ok {
			h.Name = name
		}
		h.X, _ = numberArg(m, "x")
		h.Y, _ = numberArg(m, "y")
		h.Width, _ = numberArg(m, "width")
		h.Height, _ = numberArg(m, "height")
		houses[i] = h
	}
	return houses, nil
}

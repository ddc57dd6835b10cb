package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the home directory and working directory at empty temp dirs
// so the search path finds nothing but the embedded defaults.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestEmbeddedDefaultsMatchDefaultGame(t *testing.T) {
	cfg, err := parse(DefaultYAML(), Game{})
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	want := DefaultGame()

	if cfg.World != want.World || cfg.Session != want.Session || cfg.Player != want.Player {
		t.Errorf("embedded scalar sections differ:\n got %+v\nwant %+v", cfg, want)
	}
	if len(cfg.Agents) != len(want.Agents) {
		t.Fatalf("embedded agents = %d, expected %d", len(cfg.Agents), len(want.Agents))
	}
	for i := range want.Agents {
		if cfg.Agents[i] != want.Agents[i] {
			t.Errorf("agents[%d] = %+v, expected %+v", i, cfg.Agents[i], want.Agents[i])
		}
	}
	if len(cfg.Houses) != len(want.Houses) {
		t.Fatalf("embedded houses = %d, expected %d", len(cfg.Houses), len(want.Houses))
	}
	for i := range want.Houses {
		if cfg.Houses[i] != want.Houses[i] {
			t.Errorf("houses[%d] = %+v, expected %+v", i, cfg.Houses[i], want.Houses[i])
		}
	}
}

func TestDefaultGameValues(t *testing.T) {
	cfg := DefaultGame()

	if cfg.Player.Speed != 260 {
		t.Errorf("player speed = %v, expected 260", cfg.Player.Speed)
	}
	if got := cfg.Session.VoteStopDelay().Milliseconds(); got != 2000 {
		t.Errorf("vote stop delay = %dms, expected 2000", got)
	}
	if got := cfg.Session.Duration().Seconds(); got != 10 {
		t.Errorf("duration = %vs, expected 10", got)
	}
	speeds := cfg.AgentSpeeds()
	want := []float64{60, 70, 110, 130}
	for i := range want {
		if speeds[i] != want[i] {
			t.Errorf("speed[%d] = %v, expected %v", i, speeds[i], want[i])
		}
	}
	if !cfg.Agents[3].Passive {
		t.Error("fourth agent should be passive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadUsesEmbeddedDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Session.DurationSec != 10 || len(cfg.Houses) != 4 {
		t.Errorf("Load() = %+v, expected embedded defaults", cfg.Session)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	doc := "session:\n  duration_sec: 30\n  vote_stop_delay_ms: 500\n  letter_delay_ms: 0\n" +
		"houses:\n  - {name: only, x: 10, y: 10, width: 50, height: 50}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Session.DurationSec != 30 || cfg.Session.VoteStopDelayMs != 500 {
		t.Errorf("session = %+v, expected overrides", cfg.Session)
	}
	if len(cfg.Houses) != 1 || cfg.Houses[0].Name != "only" {
		t.Errorf("houses = %+v, expected the single custom house", cfg.Houses)
	}
	if len(cfg.Agents) != 4 {
		t.Errorf("agents = %d, expected defaults to survive", len(cfg.Agents))
	}
	if cfg.Player.Speed != 260 {
		t.Errorf("player speed = %v, expected default 260", cfg.Player.Speed)
	}
}

func TestLoadSearchPathPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	t.Chdir(work)

	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	local := "session:\n  duration_sec: 20\n  vote_stop_delay_ms: 100\n  letter_delay_ms: 100\n"
	if err := os.WriteFile(filepath.Join(work, "configs", FileName), []byte(local), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(home, ".houseguard"), 0o755); err != nil {
		t.Fatal(err)
	}
	user := "player:\n  speed: 300\n  x: 700\n  y: 300\n  width: 40\n  height: 80\n"
	if err := os.WriteFile(filepath.Join(home, ".houseguard", "config.yaml"), []byte(user), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Session.DurationSec != 20 {
		t.Errorf("duration = %d, expected local override 20", cfg.Session.DurationSec)
	}
	if cfg.Player.Speed != 300 {
		t.Errorf("player speed = %v, expected user override 300", cfg.Player.Speed)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HOUSEGUARD_SESSION_DURATION_SEC", "42")
	t.Setenv("HOUSEGUARD_SESSION_VOTE_STOP_DELAY_MS", "750")
	t.Setenv("HOUSEGUARD_PLAYER_SPEED", "123.5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Session.DurationSec != 42 {
		t.Errorf("duration = %d, expected 42", cfg.Session.DurationSec)
	}
	if cfg.Session.VoteStopDelayMs != 750 {
		t.Errorf("vote stop delay = %d, expected 750", cfg.Session.VoteStopDelayMs)
	}
	if cfg.Session.LetterDelayMs != 3000 {
		t.Errorf("letter delay = %d, expected untouched 3000", cfg.Session.LetterDelayMs)
	}
	if cfg.Player.Speed != 123.5 {
		t.Errorf("player speed = %v, expected 123.5", cfg.Player.Speed)
	}
}

func TestLoadEnvParseError(t *testing.T) {
	isolate(t)
	t.Setenv("HOUSEGUARD_SESSION_DURATION_SEC", "ten")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env") {
		t.Errorf("expected parse env error, got %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultGame()
	cfg.Session.DurationSec = 0
	cfg.Player.Speed = -1
	cfg.Houses = nil
	cfg.Agents[1].Speed = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("error should wrap ErrInvalid, got %v", err)
	}
	for _, want := range []string{"duration_sec", "player.speed", "house", "agents[1]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestLoadPlatformDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HOUSEGUARD_DB", "")
	t.Setenv("HOUSEGUARD_LOG_FILE", "")

	p, err := LoadPlatform()
	if err != nil {
		t.Fatalf("LoadPlatform() error: %v", err)
	}
	if p.LogLevel != "info" || p.FPS != 30 {
		t.Errorf("platform = %+v, expected info level and 30 fps", p)
	}
	if p.DBPath != filepath.Join(home, ".houseguard", "results.db") {
		t.Errorf("db path = %q", p.DBPath)
	}
}

func TestLoadPlatformRejectsBadFPS(t *testing.T) {
	t.Setenv("HOUSEGUARD_FPS", "0")

	if _, err := LoadPlatform(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

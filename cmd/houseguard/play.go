package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/houseguard/internal/audio"
	"github.com/vovakirdan/houseguard/internal/games/houses"
	"github.com/vovakirdan/houseguard/internal/platform/logging"
	"github.com/vovakirdan/houseguard/internal/platform/tui"
	"github.com/vovakirdan/houseguard/internal/sim"
	"github.com/vovakirdan/houseguard/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a session in the terminal.

Controls:
  Arrows/WASD  - Walk (or hold the left mouse button to walk to the pointer)
  1            - Send letter (destructors turn back after a grace period)
  2            - Vote stop (destructors freeze for a while)
  R            - Restart
  M            - Sound on/off
  ?            - More keys
  Q/Ctrl+C     - Quit

Finished sessions are archived in the results database.

Examples:
  houseguard play
  houseguard play --mute
  houseguard play --config ./village.yaml --fps 60`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Do not open the sound device")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadGame()
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file.
	logger, closer, err := logging.OpenFile(platform.LogFile, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; logging disabled\n", err)
		logger, closer = logging.Discard(), io.NopCloser(nil)
	}
	defer closer.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	opts := []sim.Option{sim.WithLogger(logger)}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("results archive unavailable", "err", err)
	} else {
		defer store.Close()
		opts = append(opts, sim.WithResults(storage.NewRecorder(store, logger)))
	}

	var music tui.MusicPlayer
	if !flagMute {
		sm := openAudio(logger)
		defer sm.Cleanup()
		opts = append(opts, sim.WithAudio(sm))
		music = sm
	}

	game := houses.New(cfg, opts...)
	err = tui.Run(game, tui.Options{
		TickRate: flagFPS,
		Width:    width,
		Height:   height,
		Music:    music,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// openAudio returns a sound manager; without a device it stays silent.
func openAudio(logger *log.Logger) *audio.SoundManager {
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable", "err", err)
	}
	return sm
}

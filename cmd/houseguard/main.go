// houseguard is a terminal game where a person keeps destructors away from
// the village houses until the countdown runs out.
//
// Usage:
//
//	houseguard play                  - Play a session
//	houseguard simulate <script>...  - Run Lua scenarios headless
//	houseguard results               - Show archived sessions
//	houseguard config                - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: search configs/ and ~/.houseguard)
//	--fps <rate>        - Set tick rate (default: 30)
//	--db <path>         - Set database path (default: ~/.houseguard/results.db)
//	--log-level <name>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/houseguard/internal/config"
	"github.com/vovakirdan/houseguard/internal/platform/logging"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagDBPath   string
	flagLogLevel string

	platform    config.Platform
	platformErr error
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "houseguard",
	Short: "House Guard - keep the destructors away from the village",
	Long: `House Guard is a terminal game. Destructors walk toward the village
houses; walk into them, send them a letter or call a vote stop to keep
the houses standing until the countdown ends.

Available commands:
  play      - Play a session
  simulate  - Run Lua scenario scripts without a terminal
  results   - Show archived sessions
  config    - Print the effective configuration

Examples:
  houseguard play
  houseguard play --config ./village.yaml
  houseguard simulate scenarios/*.lua
  houseguard results --browse`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if platformErr != nil {
			return platformErr
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	platform, platformErr = config.LoadPlatform()

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", max(platform.FPS, 1), "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", platform.DBPath, "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", platform.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGame loads the game configuration honoring --config.
func loadGame() (config.Game, error) {
	return config.Load(flagConfig)
}

// stderrLogger is the logger of the non-interactive commands.
func stderrLogger() *log.Logger {
	logger, err := logging.New(os.Stderr, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		logger, _ = logging.New(os.Stderr, "info")
	}
	return logger
}

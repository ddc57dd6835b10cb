package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/houseguard/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the game configuration after merging the embedded defaults,
configs/houseguard.yaml, ~/.houseguard/config.yaml, --config and the
HOUSEGUARD_* environment overrides. The output is valid YAML and can be
saved as a starting point for a custom layout.

Examples:
  houseguard config
  houseguard config --defaults > village.yaml
  HOUSEGUARD_SESSION_DURATION_SEC=30 houseguard config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadGame()
	if err != nil {
		return err
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "# search paths: %v\n", config.SearchPaths())
	_, err = os.Stdout.Write(out)
	return err
}

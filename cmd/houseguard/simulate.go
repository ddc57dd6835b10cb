package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/houseguard/internal/scenario"
	"github.com/vovakirdan/houseguard/internal/storage"
)

var (
	flagTick   time.Duration
	flagRecord bool
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <script.lua>...",
	Short: "Run Lua scenario scripts without a terminal",
	Long: `Run one or more scenario scripts against a headless session stepped
with a fixed tick. Each script returns a Scenario built with Scenario.new
and its steps (wait, hold, point, send_letter, vote_stop, reset,
run_until_end) and expectations (expect_alive, expect_phase, expect_cause,
expect_agent, expect_all_agents, expect_accepted, ...).

Examples:
  houseguard simulate scenarios/*.lua
  houseguard simulate --tick 10ms scenarios/vote_stop_resume.lua
  houseguard simulate --record scenarios/time_up.lua`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagTick, "tick", scenario.DefaultTick, "Fixed simulation step")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Archive ended sessions in the results database")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	base, err := loadGame()
	if err != nil {
		return err
	}

	logger := stderrLogger()
	opts := scenario.Options{Tick: flagTick, Logger: logger}

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Results = storage.NewRecorder(store, logger)
	}

	failed := 0
	for _, path := range args {
		sc, err := scenario.LoadFile(path)
		if err != nil {
			return err
		}

		report, err := scenario.Run(cmd.Context(), sc, base, opts)
		switch {
		case err == nil:
			fmt.Printf("%s %s (%d checks, %d ticks, %.2fs)\n",
				passStyle.Render("PASS"), sc.Name, report.Checks, report.Ticks, report.Elapsed.Seconds())
		case errors.Is(err, scenario.ErrAssertion):
			failed++
			fmt.Printf("%s %s\n", failStyle.Render("FAIL"), sc.Name)
			for _, f := range report.Failures {
				fmt.Printf("    %s\n", f)
			}
		default:
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
	}
	return nil
}

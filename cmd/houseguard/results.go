package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/houseguard/internal/platform/tui"
	"github.com/vovakirdan/houseguard/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
	flagClear  bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [id]",
	Short: "Show archived sessions",
	Long: `Display the most recent archived sessions, or one session with the
final state of every destructor.

Examples:
  houseguard results
  houseguard results --limit 50
  houseguard results 12
  houseguard results --browse
  houseguard results --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	resultsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive results browser")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every archived session")
}

func runResults(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearResults(); err != nil {
			return err
		}
		fmt.Println("Results archive cleared.")
		return nil

	case flagBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)

	case len(args) == 1:
		var id int64
		if _, err := fmt.Sscan(args[0], &id); err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}
		return showResult(store, id)
	}

	return listResults(store)
}

func listResults(store *storage.Store) error {
	entries, err := store.RecentResults(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent sessions")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'houseguard play' to fill the archive!")
		return nil
	}

	fmt.Printf("  %-5s  %-7s  %-6s  %-7s  %-6s  %-4s  %s\n", "ID", "Result", "Houses", "Time", "Letter", "Vote", "Date")
	fmt.Printf("  %-5s  %-7s  %-6s  %-7s  %-6s  %-4s  %s\n", "--", "------", "------", "----", "------", "----", "----")
	for _, e := range entries {
		fmt.Printf("  %-5d  %-7s  %-6s  %-7s  %-6s  %-4s  %s\n",
			e.ID,
			passLabel(e.Passed()),
			fmt.Sprintf("%d/%d", e.AliveCount, e.TotalTargets),
			fmt.Sprintf("%.1fs", e.Elapsed.Seconds()),
			yesNo(e.LetterSent),
			yesNo(e.VoteStopUsed),
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Sessions: %d  Passed: %d  Failed: %d  Avg houses standing: %.1f\n",
			stats.Sessions, stats.Passed, stats.Failed(), stats.AvgAlive)
	}
	return nil
}

func showResult(store *storage.Store, id int64) error {
	e, err := store.ResultByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("no session with id %d", id)
	}

	fmt.Printf("Session %d - %s\n", e.ID, passLabel(e.Passed()))
	fmt.Println()
	fmt.Printf("  Ended by:        %s\n", e.Cause)
	fmt.Printf("  Houses standing: %d/%d\n", e.AliveCount, e.TotalTargets)
	fmt.Printf("  Time played:     %.1fs\n", e.Elapsed.Seconds())
	fmt.Printf("  Letter sent:     %s\n", yesNo(e.LetterSent))
	fmt.Printf("  Vote stop used:  %s\n", yesNo(e.VoteStopUsed))
	fmt.Printf("  Played at:       %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()

	fmt.Printf("  %-12s  %-8s  %-10s  %-7s  %s\n", "Destructor", "Variant", "Mode", "Stopped", "Position")
	for _, a := range e.Agents {
		fmt.Printf("  %-12s  %-8s  %-10s  %-7s  (%.0f, %.0f)\n", a.Name, a.Variant, a.Mode, yesNo(a.Stopped), a.X, a.Y)
	}
	return nil
}

func passLabel(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ascent/internal/registry"
	"github.com/vovakirdan/tui-ascent/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show best runs for a level",
	Long: `Display the fastest completed runs for the specified level.

Examples:
  ascent scores kirbys-ascent
  ascent scores roccos-impossible-level --limit 3`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	registerStoredLevels(store)

	id, _, err := resolveLevel(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	info, _ := registry.Info(id)

	runs, err := store.BestRuns(id, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s\n", info.Title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'ascent play %s' and reach the top to set the first time!\n", id)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Time", "Deaths", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-6d  %s\n", i+1, formatMs(r.ElapsedMs), r.Deaths, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetLevelStats(id)
	if err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Completions: %d   Best: %s   Avg deaths: %.1f\n",
			stats.Completions, formatMs(stats.BestMs), stats.AvgDeaths)
	}
}

// formatMs renders milliseconds as m:ss.s.
func formatMs(ms float64) string {
	tenths := int(ms/100 + 0.5)
	rest := tenths % 600
	return fmt.Sprintf("%d:%02d.%d", tenths/600, rest/10, rest%10)
}

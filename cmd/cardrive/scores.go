package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardrive/internal/games/cardrive"
	"github.com/vovakirdan/cardrive/internal/registry"
	"github.com/vovakirdan/cardrive/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the run history.

Examples:
  cardrive scores
  cardrive scores --limit 20
  cardrive scores --recent`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	title := "Best runs"
	var runs []storage.RunRecord
	if flagRecent {
		title = "Recent runs"
		runs, err = store.RecentRuns(cardrive.GameID, flagLimit)
	} else {
		runs, err = store.TopRuns(cardrive.GameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("%s - %s\n\n", title, registry.Title(cardrive.GameID))

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'cardrive play' to set the first record!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-9s  %-8s  %s\n", "Rank", "Distance", "Top speed", "Mode", "Date")
	fmt.Printf("  %-4s  %-10s  %-9s  %-8s  %s\n", "----", "--------", "---------", "----", "----")
	for i, r := range runs {
		mode := r.Difficulty
		if mode == "" {
			mode = "-"
		}
		fmt.Printf("  %-4d  %-10s  %-9.2f  %-8s  %s\n",
			i+1, fmt.Sprintf("%d m", r.Score), r.TopSpeed, mode, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(cardrive.GameID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d m  Average: %.0f m  Top speed: %.2f\n",
			stats.RunsCount, stats.HighScore, stats.AvgScore, stats.TopSpeed)
	}
}

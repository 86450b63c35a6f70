package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/milkrun/internal/games/milkrun"
	"github.com/vovakirdan/milkrun/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score table",
	Long: `Print the best runs with their wave, milk, cows and tanks, followed by
lifetime totals.

Examples:
  milkrun scores
  milkrun scores --limit 25
  milkrun scores --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(milkrun.ID); err != nil {
			return err
		}
		fmt.Println("High scores cleared.")
		return nil
	}

	runs, err := store.TopRuns(milkrun.ID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", gameTitle())
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'milkrun play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %9s  %4s  %5s  %4s  %5s  %s\n",
		"Rank", "Pilot", "Ship", "Score", "Wave", "Milk", "Cows", "Tanks", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %9s  %4s  %5s  %4s  %5s  %s\n",
		"----", "-----", "----", "-----", "----", "----", "----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-8s  %9d  %4d  %5d  %4d  %5d  %s\n",
			i+1, trim(r.Pilot, 12), trim(r.Ship, 8), r.Score, r.Wave, r.Milk,
			r.CowsCollected, r.TanksDestroyed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(milkrun.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Best wave: %d\n",
		stats.RunsCount, stats.HighScore, stats.AvgScore, stats.BestWave)
	fmt.Printf("Milk: %d  Cows: %d  Tanks: %d\n", stats.TotalMilk, stats.TotalCows, stats.TotalTanks)
	return nil
}

func trim(s string, n int) string {
	if s == "" {
		return "-"
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "~"
	}
	return s
}

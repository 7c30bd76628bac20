package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-copter/internal/platform/tui"
	"github.com/vovakirdan/tui-copter/internal/storage"
)

var (
	flagScoresMode   string
	flagScoresLimit  int
	flagScoresClear  bool
	flagScoresStats  bool
	flagScoresBrowse bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs recorded in the scores database.

Examples:
  copter scores
  copter scores --mode hard --limit 5
  copter scores --stats
  copter scores --browse
  copter scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only show runs of this difficulty")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history and the best score")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-difficulty statistics")
	scoresCmd.Flags().BoolVar(&flagScoresBrowse, "browse", false, "Browse the history interactively")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		err = clearScores(store)
	case flagScoresStats:
		err = printStats(store)
	case flagScoresBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		err = tui.RunScoreboard(store, width, height)
	default:
		err = printTopScores(store, flagScoresMode, flagScoresLimit)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func clearScores(store *storage.Store) error {
	if err := store.ClearScores(); err != nil {
		return err
	}
	fmt.Println("Run history and best score cleared.")
	return nil
}

func printTopScores(store *storage.Store, mode string, limit int) error {
	scores, err := store.TopScores(mode, limit)
	if err != nil {
		return err
	}

	title := "all difficulties"
	if mode != "" {
		title = mode
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'copter play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-10s  %-10s  %s\n", "Rank", "Score", "Distance", "Mode", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %-10s  %s\n", "----", "-----", "--------", "----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-10.0f  %-10s  %s\n",
			i+1, e.Score, e.Distance, e.Mode, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.LoadBestScore(); err == nil && best > 0 {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.AllStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	modes := make([]string, 0, len(stats))
	for m := range stats {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	fmt.Printf("  %-10s  %-5s  %-5s  %-7s  %s\n", "Mode", "Runs", "Best", "Avg", "Last played")
	for _, m := range modes {
		s := stats[m]
		fmt.Printf("  %-10s  %-5d  %-5d  %-7.1f  %s\n",
			s.Mode, s.Runs, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

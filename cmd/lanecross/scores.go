package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanecross/internal/crossing"
	"github.com/vovakirdan/lanecross/internal/multiplayer"
	"github.com/vovakirdan/lanecross/internal/platform/tui"
	"github.com/vovakirdan/lanecross/internal/storage"
)

var (
	flagScoresVersus bool
	flagScoresLimit  int
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the scoreboard",
	Long: `Display the best solo runs, optionally for one seed, or the most
recent versus matches.

Examples:
  lanecross scores
  lanecross scores --seed 4242424242
  lanecross scores --versus
  lanecross scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresVersus, "versus", false, "Show recent versus matches")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Scores are stored under the normalized seed
	seed := ""
	if flagSeed != "" {
		seed = crossing.NormalizeSeed(flagSeed, crossing.DefaultEntropy)
	}

	switch {
	case flagScoresTUI:
		width, height := terminalSize()
		if err := tui.RunScoreboard(store, seed, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case flagScoresVersus:
		printVersus(store)
	default:
		printSolo(store, seed)
	}
}

func printSolo(store *storage.Store, seed string) {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if seed != "" {
		scores, err = store.TopScoresForSeed(seed, flagScoresLimit)
		fmt.Printf("High Scores - seed %s\n", seed)
	} else {
		scores, err = store.TopScores(flagScoresLimit)
		fmt.Println("High Scores")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lanecross play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-12s  %-8s  %s\n", "Rank", "Player", "Seed", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-12s  %-8s  %s\n", "----", "------", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-12s  %-8d  %s\n", i+1, entry.Player, entry.Seed, entry.Score, dateStr)
	}

	// Show overall stats
	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Seeds: %d  Average: %.1f\n",
			stats.HighScore, stats.Runs, stats.Seeds, stats.AvgScore)
	}
}

func printVersus(store *storage.Store) {
	matches, err := store.RecentVersusMatches(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Versus Matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No versus matches yet.")
		fmt.Println()
		fmt.Println("Play 'lanecross versus' to start one!")
		return
	}

	fmt.Printf("  %-12s  %-14s  %-14s  %-7s  %-14s  %s\n", "Seed", "Player 1", "Player 2", "Score", "Result", "Date")
	fmt.Printf("  %-12s  %-14s  %-14s  %-7s  %-14s  %s\n", "----", "--------", "--------", "-----", "------", "----")

	for _, m := range matches {
		result := m.Outcome
		if o, ok := multiplayer.ParseOutcome(m.Outcome); ok {
			result = o.String()
		}
		fmt.Printf("  %-12s  %-14s  %-14s  %-7s  %-14s  %s\n",
			m.Seed, m.Player1, m.Player2,
			fmt.Sprintf("%d-%d", m.Score1, m.Score2),
			result, m.CreatedAt.Format("2006-01-02 15:04"))
	}
}

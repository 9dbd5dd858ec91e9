package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanecross/internal/crossing"
)

var (
	flagFrom  int
	flagCount int
	flagJSON  bool
)

var lanesCmd = &cobra.Command{
	Use:   "lanes",
	Short: "Print the lanes a seed generates",
	Long: `Print the generated lane for each world row in a range.
Without --seed a random seed is picked and printed.

Examples:
  lanecross lanes --seed hello
  lanecross lanes --seed hello --from 70 --count 14
  lanecross lanes --seed hello --json`,
	Args: cobra.NoArgs,
	Run:  runLanes,
}

func init() {
	lanesCmd.Flags().IntVar(&flagFrom, "from", 0, "First world row")
	lanesCmd.Flags().IntVar(&flagCount, "count", 14, "Number of rows")
	lanesCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON instead of a table")
}

func runLanes(_ *cobra.Command, _ []string) {
	if flagCount < 1 || flagCount > crossing.MaxPreviewRows {
		fmt.Fprintf(os.Stderr, "Error: --count must be between 1 and %d\n", crossing.MaxPreviewRows)
		os.Exit(1)
	}

	preview := crossing.PreviewLanes(flagSeed, flagFrom, flagCount, crossing.DefaultEntropy)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(preview); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Seed %s (match seed %d)\n", preview.Seed, preview.MatchSeed)
	fmt.Println()

	// Print header
	fmt.Printf("  %-6s  %-7s  %-5s  %-6s  %-6s  %-4s  %s\n", "Row", "Kind", "Dir", "Base", "Max", "Loop", "Slots (len/gap)")
	fmt.Printf("  %-6s  %-7s  %-5s  %-6s  %-6s  %-4s  %s\n", "---", "----", "---", "----", "---", "----", "---------------")

	// Highest row first, the way the board is drawn
	for i := len(preview.Lanes) - 1; i >= 0; i-- {
		lane := preview.Lanes[i]
		if lane.IsSafe() {
			fmt.Printf("  %-6d  %-7s\n", lane.Row, lane.Kind)
			continue
		}

		slots := make([]string, len(lane.Slots))
		for j, s := range lane.Slots {
			slots[j] = fmt.Sprintf("%d/%d", s.Length, s.Gap)
		}
		fmt.Printf("  %-6d  %-7s  %-5s  %-6.2f  %-6.2f  %-4d  %s\n",
			lane.Row, lane.Kind, lane.Direction, lane.BaseSpeed, lane.MaxSpeed, lane.LoopLength, strings.Join(slots, " "))
	}
}

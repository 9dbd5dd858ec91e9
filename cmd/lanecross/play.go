package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanecross/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a solo run",
	Long: `Start a solo run. The same seed always generates the same lanes.

Controls:
  W/A/S/D or arrows  - Move one tile
  P                  - Pause
  R                  - Restart with the same seed
  Esc/B              - Quit (when paused or after game over)
  Ctrl+S             - Save a screenshot
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Traffic speeds up slowly
  normal - Default speed-up per crossed row
  hard   - Traffic speeds up fast
  fixed  - No speed-up

Examples:
  lanecross play
  lanecross play --seed 4242424242
  lanecross play --difficulty hard
  lanecross play --config ./my-crossing.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

var versusCmd = &cobra.Command{
	Use:   "versus",
	Short: "Two players on one keyboard, same seed",
	Long: `Start a local versus match. Both players get the same lanes.
The match ends when both have been hit; the higher score wins.

Controls:
  W/A/S/D   - Player 1
  Arrows    - Player 2
  R         - Restart both with the same seed
  Esc/B     - Quit
  Q/Ctrl+C  - Quit

Examples:
  lanecross versus
  lanecross versus --seed duel --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runVersus,
}

func runPlay(_ *cobra.Command, _ []string) {
	opts, store := loadOptions("play")

	runErr := tui.Run(opts, runtimeConfig(opts))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func runVersus(_ *cobra.Command, _ []string) {
	opts, store := loadOptions("versus")

	runErr := tui.RunVersus(opts, runtimeConfig(opts))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", runErr)
		os.Exit(1)
	}
}

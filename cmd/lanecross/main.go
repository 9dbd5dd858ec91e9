// lanecross is an endless lane-crossing arcade game for the terminal.
//
// Usage:
//
//	lanecross                - Start the menu (solo, versus, scores)
//	lanecross play           - Play a solo run
//	lanecross versus         - Two players, one keyboard, same seed
//	lanecross lanes          - Print the lanes a seed generates
//	lanecross scores         - Show the scoreboard
//	lanecross serve          - Start the SSH arcade and spectator API
//
// Global flags:
//
//	--seed <text>        - Seed text (empty = random)
//	--fps <rate>         - Set tick rate (default from config, 60)
//	--db <path>          - Set database path (default: ~/.lanecross/scores.db)
//	--config <path>      - Custom crossing.yaml
//	--difficulty <name>  - easy, normal, hard or fixed
//	--debug              - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lanecross/internal/config"
	"github.com/vovakirdan/lanecross/internal/core"
	"github.com/vovakirdan/lanecross/internal/platform/tui"
	"github.com/vovakirdan/lanecross/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       string
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanecross",
	Short: "Lane Cross - cross endless lanes of traffic in your terminal",
	Long: `Lane Cross is an endless lane-crossing arcade game. Every seed
generates the same lanes, so runs can be compared and replayed.

Available commands:
  play     - Play a solo run
  versus   - Two players on one keyboard, same seed
  lanes    - Print the lanes a seed generates
  scores   - View the scoreboard
  serve    - Start the SSH arcade and spectator API

Run without a command to open the menu.

Examples:
  lanecross
  lanecross play --seed hello
  lanecross versus --difficulty hard
  lanecross lanes --seed hello --count 21
  lanecross serve --ssh :2222 --http :8080`,
	Run: runSession,
}

func init() {
	defaultDB := os.Getenv("LANECROSS_DB")
	if defaultDB == "" {
		defaultDB = storage.DefaultPath
	}

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "Seed text (empty = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDB, "Path to scores database (env LANECROSS_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom crossing.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versusCmd)
	rootCmd.AddCommand(lanesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the process logger, honoring --debug.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadOptions builds the UI options from the global flags. The returned
// store is nil when the database could not be opened; the caller closes it.
func loadOptions(prefix string) (tui.Options, *storage.Store) {
	logger := newLogger(prefix)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		preset, err = config.ParsePreset(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Valid presets: %v\n", config.Presets)
			os.Exit(1)
		}
	}
	if flagFPS > 0 {
		cfg.Simulation.TickRate = flagFPS
	}

	opts := tui.Options{
		Config: cfg,
		Preset: preset,
		Player: currentUser(),
		Logger: logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the game still works
		return opts, nil
	}
	opts.Store = store
	return opts, store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig(opts tui.Options) core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: opts.Config.Simulation.TickRate,
		Seed:     flagSeed,
	}
}

func currentUser() string {
	for _, key := range []string{"LANECROSS_PLAYER", "USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "player"
}

func runSession(_ *cobra.Command, _ []string) {
	opts, store := loadOptions("lanecross")
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(opts, runtimeConfig(opts)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

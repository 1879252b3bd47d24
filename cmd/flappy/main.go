// flappy is a terminal Flappy Bird with neural-network controlled birds.
//
// Usage:
//
//	flappy play [mode]       - Play; without a mode, pick one from the menu
//	flappy modes             - List available modes
//	flappy sim               - Run the genetic algorithm headless
//	flappy serve             - Start SSH server for remote play
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"

	// Register the game modes
	_ "github.com/vovakirdan/flappy-neural/internal/modes"
)

var (
	// Global flags
	flagFPS        int
	flagIdleFPS    int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal, flown by you or by neural networks",
	Long: `flappy is a side-scrolling Flappy Bird simulation for the terminal.

Birds are flown by the keyboard or by small neural networks that either
evolve with a genetic algorithm or learn by watching you play.

Available commands:
  play     - Play a mode (menu if none given)
  modes    - Show all available modes
  sim      - Evolve networks headless and print generation stats
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  flappy play
  flappy play genetic --seed 42
  flappy sim --generations 20 --csv > generations.csv
  flappy serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate while a round runs")
	rootCmd.PersistentFlags().IntVar(&flagIdleFPS, "idle-fps", 10, "Tick rate while choosing a mode")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config file and applies the difficulty preset, the
// --difficulty flag taking precedence over the file's preset.
func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset := cfg.Difficulty.Preset
	if flagDifficulty != "" {
		preset = config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	config.ApplyPreset(&cfg, preset)

	return cfg, cfg.Validate()
}

// runtimeConfig builds the runtime config for a terminal of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickRate:     flagFPS,
		IdleTickRate: flagIdleFPS,
		Seed:         flagSeed,
	}
}

// newLogger creates a logger at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

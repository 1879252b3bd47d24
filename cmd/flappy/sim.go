package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-neural/internal/game"
	"github.com/vovakirdan/flappy-neural/internal/modes"
)

var (
	flagGenerations int
	flagMaxTicks    int
	flagCSV         bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Evolve networks without a terminal UI",
	Long: `Runs the genetic algorithm headless, one round per generation, as fast
as the CPU allows. Each generation is logged to stderr when it ends.

With --csv the per-generation statistics are written to stdout as CSV
once the run finishes.

Examples:
  flappy sim
  flappy sim --generations 50 --seed 7
  flappy sim --csv > generations.csv`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagGenerations, "generations", 10, "Number of generations to run")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 3600, "End a round after this many ticks (0 = no limit)")
	simCmd.Flags().BoolVar(&flagCSV, "csv", false, "Write generation stats as CSV to stdout")
}

func runSim(_ *cobra.Command, _ []string) {
	if flagGenerations < 1 {
		fmt.Fprintln(os.Stderr, "Error: --generations must be at least 1")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr, "flappy-sim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt := runtimeConfig(80, 24)
	hooks := modes.NewGenetic(modes.NewDeps(cfg, flagSeed, logger))
	runner := game.NewRunner(cfg, hooks, rt, game.WithLogger(logger))

	logger.Info("evolving", "generations", flagGenerations, "population", cfg.Genetic.Population)
	for i := 0; i < flagGenerations; i++ {
		summary := runner.Play(flagMaxTicks)
		if summary.Ticks >= flagMaxTicks && flagMaxTicks > 0 {
			logger.Debug("round cut at tick limit", "round", summary.Round, "ticks", summary.Ticks)
		}
	}
	logger.Info("done", "best", runner.BestEver())

	if flagCSV {
		if err := gocsv.Marshal(hooks.History(), os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
	}
}

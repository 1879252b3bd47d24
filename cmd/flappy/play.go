package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-neural/internal/platform/tui"
	"github.com/vovakirdan/flappy-neural/internal/registry"
	"github.com/vovakirdan/flappy-neural/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start the game. Without a mode, a menu lists the available ones.

Modes can be given by number or name:
  1, standard  - Fly yourself
  2, genetic   - Watch a population of networks evolve
  3, training  - Teach a network by playing

Controls:
  Up/W       - Jump
  Space      - Start a round
  Esc        - Back to the menu
  1-9        - Pick a mode from the menu
  H          - Round history (from the menu; R toggles best/recent)
  Q/Ctrl+C   - Quit

Round results are kept in memory until you quit.

Examples:
  flappy play
  flappy play genetic
  flappy play 3 --difficulty easy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	var mode registry.Mode
	if len(args) == 1 {
		m, err := registry.Parse(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'flappy modes' to see available modes.")
			os.Exit(1)
		}
		mode = m
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so logs are dropped.
	logger, err := newLogger(io.Discard, "flappy")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ledger, err := storage.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: round history unavailable: %v\n", err)
		ledger = nil
	}

	runErr := tui.Run(tui.Options{
		Config:  cfg,
		Runtime: runtimeConfig(width, height),
		Ledger:  ledger,
		Logger:  logger,
		Mode:    mode,
	})

	if ledger != nil {
		ledger.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-neural/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all available modes",
	Long:  `Shows every game mode in the mode table.`,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  #  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  -  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, m := range modes {
		fmt.Printf("  %d  %-*s  %s\n", int(m.Mode), maxIDLen, m.ID, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'flappy play <id>' to play a mode.")
}

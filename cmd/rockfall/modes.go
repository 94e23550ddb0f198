package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfall/internal/config"
	"github.com/vovakirdan/rockfall/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List rule modes and presets",
	Long:  `Shows the registered rule modes and the configuration presets.`,
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

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Title)
	}

	fmt.Println()
	fmt.Print("Presets:")
	for _, p := range config.Presets() {
		fmt.Printf(" %s", p)
	}
	fmt.Println()
	fmt.Println()
	fmt.Println("Run 'rockfall play --mode <id>' to preselect a mode.")
}

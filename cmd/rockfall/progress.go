package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfall/internal/storage"
)

var (
	flagAllPlayers bool
	flagRuns       int
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show best completion times",
	Long: `Display the fastest completion of each level in the current set and
the most recent runs.

Examples:
  rockfall progress
  rockfall progress --all
  rockfall progress --levels ./my-levels --runs 20`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagAllPlayers, "all", false, "Include every player, not just you")
	progressCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent runs to show")
}

func runProgress(_ *cobra.Command, _ []string) {
	e := mustSetup()

	store, err := storage.Open(e.cfg.Storage.DBPath)
	if err != nil {
		fatalf("Error opening progress database: %v\n", err)
	}
	defer store.Close()

	player := localPlayer()
	filter := player
	if flagAllPlayers {
		filter = ""
	}

	setName := e.loader.Name()
	best, err := store.BestCompletions(setName, filter)
	if err != nil {
		store.Close()
		fatalf("Error retrieving completions: %v\n", err)
	}

	if flagAllPlayers {
		fmt.Printf("Best times - %s (everyone)\n", setName)
	} else {
		fmt.Printf("Best times - %s (%s)\n", setName, player)
	}
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No levels completed yet.")
		fmt.Println()
		fmt.Println("Play 'rockfall play' to set the first time!")
	} else {
		fmt.Printf("  %-5s  %-8s  %-6s  %-12s  %s\n", "Level", "Ticks", "Deaths", "Player", "Date")
		fmt.Printf("  %-5s  %-8s  %-6s  %-12s  %s\n", "-----", "-----", "------", "------", "----")
		for _, c := range best {
			fmt.Printf("  %-5d  %-8d  %-6d  %-12s  %s\n",
				c.Level+1, c.Ticks, c.Deaths, c.Player, c.CompletedAt.Format("2006-01-02 15:04"))
		}
	}

	if flagRuns <= 0 {
		return
	}

	runs, err := store.RecentRuns(filter, flagRuns)
	if err != nil {
		store.Close()
		fatalf("Error retrieving runs: %v\n", err)
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Println()
	for _, r := range runs {
		fmt.Printf("  %s  %-12s  %-10s  %-8s  %s\n",
			r.StartedAt.Format("2006-01-02 15:04"), r.Player, r.LevelSet, r.Mode, r.Outcome)
	}
}

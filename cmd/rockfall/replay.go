package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfall/internal/replay"
	"github.com/vovakirdan/rockfall/internal/world"
)

var (
	flagShowGrid bool
	flagExpect   string
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Run a scripted move sequence",
	Long: `Plays the moves of a YAML script on a fresh session and prints how it
ended. Scripts look like:

  title: first dig solution
  level: 1
  moves: RRDD.LL

Moves are U, D, L and R; "." waits one tick. Use --expect to fail unless
the replay ends in the given state (playing, dead, level-complete,
game-complete).

Examples:
  rockfall replay solutions/level1.yaml
  rockfall replay solutions/level1.yaml --expect level-complete --grid`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagShowGrid, "grid", false, "Print the final grid")
	replayCmd.Flags().StringVar(&flagExpect, "expect", "", "Required final state")
}

func runReplay(_ *cobra.Command, args []string) {
	e := mustSetup()

	if flagExpect != "" && !validState(flagExpect) {
		fatalf("Error: unknown state %q\n", flagExpect)
	}

	sc, err := replay.Load(args[0])
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	set, _, err := e.levelSet()
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	s, sum, err := replay.Run(set, sc, e.cfg.WorldRules())
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	e.logger.Debug("replay finished", "script", args[0], "steps", sum.Steps, "state", sum.State)

	if sc.Title != "" {
		fmt.Println(sc.Title)
	}
	fmt.Println(sum)

	if flagShowGrid {
		fmt.Println()
		fmt.Print(string(s.ExportGrid()))
	}

	if flagExpect != "" && sum.State.String() != flagExpect {
		fatalf("expected %s, got %s\n", flagExpect, sum.State)
	}
}

func validState(name string) bool {
	for _, st := range []world.State{world.Playing, world.Dead, world.LevelComplete, world.GameComplete} {
		if st.String() == name {
			return true
		}
	}
	return false
}

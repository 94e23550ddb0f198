package main

import (
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rockfall/internal/platform/tui"
	"github.com/vovakirdan/rockfall/internal/registry"
)

var (
	flagStart int
	flagMode  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a level and play",
	Long: `Open the level picker and play.

Controls:
  Arrows     - Move and dig
  S          - Save position
  L          - Load saved position
  R          - Restart level
  X          - Give up (counts as a death)
  P          - Pause
  Esc        - Back to the level picker (paused or finished)
  Q/Ctrl+C   - Quit

Examples:
  rockfall play
  rockfall play --start 4
  rockfall play --mode classic
  rockfall play --levels ./levels.zip --preset easy`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStart, "start", 0, "Level to preselect, from 1 (default from config)")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Rule mode to preselect (see 'rockfall modes')")
}

func runPlay(_ *cobra.Command, _ []string) {
	e := mustSetup()

	if flagMode != "" && !registry.Exists(flagMode) {
		fatalf("Error: unknown mode %q\nRun 'rockfall modes' to see available modes.\n", flagMode)
	}

	set, _, err := e.levelSet()
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	start := e.cfg.Levels.Start
	if flagStart > 0 {
		start = flagStart
	}
	if start > set.Len() {
		fatalf("Error: level %d does not exist, the set has %d levels\n", start, set.Len())
	}

	// Get terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Levels:             set,
		Rules:              e.cfg.WorldRules(),
		TickRate:           e.cfg.Timing.TicksPerSecond,
		DeathPauseTicks:    e.cfg.Timing.DeathPauseTicks,
		CompletePauseTicks: e.cfg.Timing.CompletePauseTicks,
		StartLevel:         start - 1,
		Mode:               flagMode,
		Store:              store,
		Translator:         e.translator(),
		Logger:             e.logger,
		Player:             localPlayer(),
	}

	if err := tui.Run(opts, width, height); err != nil {
		if store != nil {
			store.Close()
		}
		fatalf("Error running game: %v\n", err)
	}
}

// localPlayer names the progress owner for local play.
func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}

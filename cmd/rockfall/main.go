// rockfall is a rock-fall puzzle game for the terminal.
//
// Usage:
//
//	rockfall play                 - Pick a level and play
//	rockfall levels list          - List the levels of the current set
//	rockfall levels check <path>  - Validate level files
//	rockfall replay <script>      - Run a scripted move sequence
//	rockfall progress             - Show best completion times
//	rockfall serve                - Start the SSH server
//	rockfall modes                - List rule modes
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.rockfall, ./configs)
//	--levels <path>     - Level directory, .zip archive or file
//	--db <path>         - Progress database
//	--log-level <lvl>   - debug, info, warn or error
//	--lang <code>       - Interface language (default: from LANG)
//	--preset <name>     - easy, normal, hard or classic
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfall/internal/config"
	_ "github.com/vovakirdan/rockfall/internal/games/rockfall" // registers the modes
	"github.com/vovakirdan/rockfall/internal/i18n"
	"github.com/vovakirdan/rockfall/internal/levels"
	"github.com/vovakirdan/rockfall/internal/storage"
	"github.com/vovakirdan/rockfall/internal/world"
)

var (
	// Global flags
	flagConfig   string
	flagLevels   string
	flagDBPath   string
	flagLogLevel string
	flagLang     string
	flagPreset   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rockfall",
	Short: "Rockfall - dig for diamonds under falling rocks",
	Long: `Rockfall is a terminal puzzle game. Dig through earth, collect every
diamond and keep out from under the rocks.

Examples:
  rockfall play
  rockfall play --start 3 --mode classic
  rockfall levels list --levels ./my-levels.zip
  rockfall replay solutions/level1.yaml
  rockfall serve --ssh :2222 --metrics :9100`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level directory, .zip archive or file (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "Interface language, e.g. en or es")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Rule preset: easy, normal, hard, classic")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(modesCmd)
}

// env is what most commands share: configuration, logger and levels.
type env struct {
	cfg    config.Config
	logger *log.Logger
	loader *levels.Loader
}

// mustSetup is setup for command handlers: errors end the process.
func mustSetup() *env {
	e, err := setup()
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	return e
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

// setup loads the configuration and applies the global flags over it.
func setup() (*env, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return nil, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagLevels != "" {
		cfg.Levels.Dir = flagLevels
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLang != "" {
		cfg.Locale = flagLang
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log.Level)
	if source != "" {
		logger.Debug("loaded config", "path", source)
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		loader: levels.NewLoader(config.ExpandHome(cfg.Levels.Dir)),
	}, nil
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "rockfall",
	})
	if lvl, err := log.ParseLevel(strings.ToLower(level)); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func (e *env) levelSet() (*world.LevelSet, []levels.Level, error) {
	set, lvls, err := e.loader.LoadSet()
	if err != nil {
		return nil, nil, fmt.Errorf("loading levels from %s: %w", e.loader.Name(), err)
	}
	e.logger.Debug("loaded levels", "set", set.Name(), "count", set.Len())
	return set, lvls, nil
}

// openStore opens the progress database. Failures are logged and the game
// runs without persistence.
func (e *env) openStore() *storage.Store {
	store, err := storage.Open(e.cfg.Storage.DBPath)
	if err != nil {
		e.logger.Warn("could not open progress database", "path", e.cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

func (e *env) translator() *i18n.Translator {
	return i18n.New(e.cfg.Locale)
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rockfall/internal/core"
	"github.com/vovakirdan/rockfall/internal/games/rockfall"
	"github.com/vovakirdan/rockfall/internal/i18n"
	"github.com/vovakirdan/rockfall/internal/metrics"
	"github.com/vovakirdan/rockfall/internal/registry"
	"github.com/vovakirdan/rockfall/internal/storage"
	"github.com/vovakirdan/rockfall/internal/world"
)

// Options configures a play session, local or over SSH.
type Options struct {
	Levels             *world.LevelSet
	Rules              world.Rules
	TickRate           int
	DeathPauseTicks    int
	CompletePauseTicks int
	StartLevel         int    // 0-based, preselected in the picker
	Mode               string // preselected mode ID

	Store      *storage.Store   // nil disables persistence
	Metrics    *metrics.Metrics // nil disables metrics
	Translator *i18n.Translator // nil for English
	Logger     *log.Logger
	Player     string
}

func (o Options) tr(msgid string, vars ...any) string {
	if o.Translator == nil {
		return fmt.Sprintf(msgid, vars...)
	}
	return o.Translator.Get(msgid, vars...)
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o Options) mode() string {
	if o.Mode == "" {
		return rockfall.ModeStandard
	}
	return o.Mode
}

func (o Options) runtimeConfig(w, h, level int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    w,
		ScreenH:    h,
		TickRate:   o.TickRate,
		StartLevel: level,
		Player:     o.Player,
	}
}

// newGame builds a game for mode with its recorders. The returned storage
// recorder is nil when persistence is off.
func (o Options) newGame(mode string) (registry.Game, *storage.Recorder, error) {
	var recs core.Recorders
	var storeRec *storage.Recorder

	if o.Store != nil {
		rec, err := storage.NewRecorder(o.Store, o.Levels.Name(), o.Player, mode, o.logger())
		if err != nil {
			// Play on without persistence.
			o.logger().Warn("could not start run record", "player", o.Player, "error", err)
		} else {
			storeRec = rec
			recs = append(recs, rec)
		}
	}
	if o.Metrics != nil {
		recs = append(recs, o.Metrics.Recorder())
	}

	game, err := registry.Create(mode, registry.Env{
		Levels:             o.Levels,
		Rules:              o.Rules,
		DeathPauseTicks:    o.DeathPauseTicks,
		CompletePauseTicks: o.CompletePauseTicks,
		Recorder:           recs,
		Translate:          o.tr,
	})
	if err != nil {
		if storeRec != nil {
			storeRec.Finish(storage.OutcomeQuit)
		}
		return nil, nil, err
	}
	return game, storeRec, nil
}

// Package rockfall adapts a world.Session to the platform's Game interface.
// It maps input frames to moves and meta actions, paces the death and
// level-complete pauses, and draws a viewport centred on the player.
package rockfall

import (
	"fmt"

	"github.com/vovakirdan/rockfall/internal/core"
	"github.com/vovakirdan/rockfall/internal/levels"
	"github.com/vovakirdan/rockfall/internal/registry"
	"github.com/vovakirdan/rockfall/internal/world"
)

// Mode identifiers.
const (
	ModeStandard = "rockfall"
	ModeClassic  = "classic"
)

// Pause lengths used when the environment leaves them unset.
const (
	DefaultDeathPauseTicks    = 12
	DefaultCompletePauseTicks = 16
)

// noticeTicks is how long a status notice stays on screen.
const noticeTicks = 16

const (
	hudHeight    = 1
	statusHeight = 1
	minViewW     = 10
	minViewH     = 5
)

func init() {
	registry.Register(ModeStandard, "Rockfall", func(env registry.Env) registry.Game {
		return New(ModeStandard, env)
	})
	registry.Register(ModeClassic, "Rockfall (classic rules)", func(env registry.Env) registry.Game {
		env.Rules = world.ClassicRules()
		return New(ModeClassic, env)
	})
}

// Game implements registry.Game over a world.Session.
type Game struct {
	id    string
	title string

	set           *world.LevelSet
	rules         world.Rules
	deathPause    int
	completePause int
	rec           core.Recorder
	tr            func(string, ...any) string

	session *world.Session
	err     error // setup failure, shown instead of the board

	tick       uint64
	paused     bool
	countdown  int // ticks left in a death or level-complete pause
	notice     string
	noticeLeft int
	tooSmall   bool
}

// New creates a game for mode using env. A nil level set falls back to the
// built-in levels.
func New(mode string, env registry.Env) *Game {
	g := &Game{
		id:            mode,
		title:         "Rockfall",
		set:           env.Levels,
		rules:         env.Rules,
		deathPause:    env.DeathPauseTicks,
		completePause: env.CompletePauseTicks,
		rec:           env.Recorder,
		tr:            env.Translate,
	}
	if mode == ModeClassic {
		g.title = "Rockfall (classic rules)"
	}
	if g.deathPause <= 0 {
		g.deathPause = DefaultDeathPauseTicks
	}
	if g.completePause <= 0 {
		g.completePause = DefaultCompletePauseTicks
	}
	if g.rec == nil {
		g.rec = core.NopRecorder{}
	}
	if g.tr == nil {
		g.tr = fmt.Sprintf
	}
	if g.set == nil {
		g.set, _, g.err = levels.NewLoader("").LoadSet()
	}
	return g
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Session exposes the underlying simulation. Nil until Reset succeeds.
func (g *Game) Session() *world.Session {
	return g.session
}

// Err returns the setup error, if any.
func (g *Game) Err() error {
	return g.err
}

// Reset starts a run at cfg.StartLevel. A checkpoint stored by the
// recorder for that level is restored.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.paused = false
	g.countdown = 0
	g.notice = ""
	g.noticeLeft = 0
	g.session = nil

	if g.set == nil {
		if g.err == nil {
			g.err = world.ErrNoLevels
		}
		return
	}

	start := core.Clamp(cfg.StartLevel, 0, g.set.Len()-1)
	s, err := world.NewSession(g.set, start, g.rules)
	if err != nil {
		g.err = err
		return
	}
	g.err = nil
	g.session = s
	g.levelStarted()
}

// levelStarted notifies the recorder and restores a stored checkpoint.
func (g *Game) levelStarted() {
	level := g.session.LevelIndex()
	g.rec.LevelStarted(level)

	data, ok := g.rec.LoadCheckpoint(level)
	if !ok {
		return
	}
	if err := g.session.ImportGrid(data); err != nil {
		g.say(g.tr("Saved position unreadable, starting fresh"))
		return
	}
	g.session.SavePosition()
	g.say(g.tr("Saved position restored"))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	if g.noticeLeft > 0 {
		g.noticeLeft--
		if g.noticeLeft == 0 {
			g.notice = ""
		}
	}

	if in.Has(core.ActionPause) && g.session.State() == world.Playing {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var res core.StepResult
	switch g.session.State() {
	case world.GameComplete:
		if in.Has(core.ActionRestart) {
			g.startOver()
		}
	case world.Dead:
		g.stepDead(in)
	case world.LevelComplete:
		g.stepComplete()
	default:
		res = g.stepPlaying(in)
	}

	res.State = g.State()
	if g.notice != "" {
		res.Notices = append(res.Notices, g.notice)
	}
	return res
}

func (g *Game) stepPlaying(in core.InputFrame) core.StepResult {
	s := g.session
	level := s.LevelIndex()

	// Meta actions take the whole tick.
	switch {
	case in.Has(core.ActionRestart):
		_ = s.Restart()
		g.say(g.tr("Level restarted"))
		return core.StepResult{}
	case in.Has(core.ActionSave):
		if s.SavePosition() {
			g.rec.SaveCheckpoint(level, s.ExportGrid())
			g.say(g.tr("Position saved"))
		}
		return core.StepResult{}
	case in.Has(core.ActionLoad):
		if s.LoadPosition() {
			g.say(g.tr("Position loaded"))
		} else {
			g.say(g.tr("No saved position"))
		}
		return core.StepResult{}
	case in.Has(core.ActionAbandon):
		if s.Abandon() {
			g.rec.Died(level)
			g.countdown = g.deathPause
		}
		return core.StepResult{}
	}

	dir := world.IntentFromAxes(
		in.Has(core.ActionLeft),
		in.Has(core.ActionRight),
		in.Has(core.ActionUp),
		in.Has(core.ActionDown),
	)
	step := s.Step(dir)

	for _, ev := range step.Events {
		if ev.Kind == world.EventUnlock {
			g.say(g.tr("%d safes unlocked", ev.Count))
		}
	}

	switch {
	case step.Died:
		g.rec.Died(level)
		g.countdown = g.deathPause
	case step.GameComplete:
		g.rec.LevelCompleted(level, s.Ticks(), s.Deaths())
		g.rec.GameCompleted()
	case step.LevelComplete:
		g.rec.LevelCompleted(level, s.Ticks(), s.Deaths())
		g.countdown = g.completePause
	}

	return core.StepResult{Falling: step.Falling}
}

// stepDead waits out the death pause, then returns to the checkpoint.
// Restart and Load skip the pause.
func (g *Game) stepDead(in core.InputFrame) {
	s := g.session
	switch {
	case in.Has(core.ActionRestart):
		_ = s.Restart()
		g.countdown = 0
		return
	case in.Has(core.ActionLoad):
		g.countdown = 0
	case g.countdown > 0:
		g.countdown--
	}
	if g.countdown > 0 {
		return
	}
	if !s.LoadPosition() {
		_ = s.Restart()
	}
}

func (g *Game) stepComplete() {
	if g.countdown > 0 {
		g.countdown--
		return
	}
	if err := g.session.Advance(); err != nil {
		return
	}
	g.levelStarted()
}

// startOver begins a fresh run from the first level.
func (g *Game) startOver() {
	s, err := world.NewSession(g.set, 0, g.rules)
	if err != nil {
		g.err = err
		return
	}
	g.session = s
	g.countdown = 0
	g.levelStarted()
}

func (g *Game) say(msg string) {
	g.notice = msg
	g.noticeLeft = noticeTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: true}
	}
	s := g.session
	won := s.State() == world.GameComplete
	return core.GameState{
		Level:      s.LevelIndex(),
		LevelCount: s.LevelCount(),
		Diamonds:   s.DiamondsRemaining(),
		Deaths:     s.Deaths(),
		Ticks:      s.Ticks(),
		GameOver:   won,
		Won:        won,
		Paused:     g.paused,
	}
}

// Render draws the HUD, the visible part of the grid and a status line.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		msg := g.tr("No levels to play")
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg, core.ColorBrightRed)
		return
	}

	viewW := dst.Width()
	viewH := dst.Height() - hudHeight - statusHeight
	g.tooSmall = viewW < minViewW || viewH < minViewH
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, g.tr("Terminal too small"), core.ColorYellow)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst, viewW, viewH)
	g.renderStatus(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	left := g.tr("Level %d/%d: %s", s.LevelIndex()+1, s.LevelCount(), s.Title())
	right := g.tr("Diamonds %d  Deaths %d", s.DiamondsRemaining(), s.Deaths())
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorBrightCyan)
}

func (g *Game) renderBoard(dst *core.Screen, viewW, viewH int) {
	s := g.session
	pos := s.Position()
	vp := core.Viewport(s.Size(), viewW, viewH, pos.X, pos.Y)

	// Centre small levels in the view.
	ox := (viewW - vp.W) / 2
	oy := hudHeight + (viewH-vp.H)/2

	for y := vp.Y; y < vp.Bottom(); y++ {
		for x := vp.X; x < vp.Right(); x++ {
			r, c := tileLook(s.Tile(x, y))
			dst.SetColored(ox+x-vp.X, oy+y-vp.Y, r, c)
		}
	}

	r, c := playerRune, core.ColorBrightYellow
	if s.Dead() {
		r, c = deadRune, core.ColorBrightRed
	}
	dst.SetColored(ox+pos.X-vp.X, oy+pos.Y-vp.Y, r, c)
}

func (g *Game) renderStatus(dst *core.Screen) {
	y := dst.Height() - 1
	var msg string
	color := core.ColorGray

	switch {
	case g.paused:
		msg, color = g.tr("PAUSED - press P to resume"), core.ColorYellow
	case g.session.State() == world.Dead:
		msg, color = g.tr("Crushed! Returning to your saved position..."), core.ColorBrightRed
	case g.session.State() == world.LevelComplete:
		msg, color = g.tr("Level complete!"), core.ColorBrightGreen
	case g.session.State() == world.GameComplete:
		msg, color = g.tr("All levels complete! R to play again, Esc for menu"), core.ColorBrightGreen
	case g.notice != "":
		msg, color = g.notice, core.ColorBrightWhite
	default:
		msg = g.tr("Arrows move  S save  L load  R restart  X give up  P pause")
	}
	dst.DrawTextCentered(y, msg, color)
}

const (
	playerRune = '☺'
	deadRune   = 'X'
)

// tileLook returns the rune and colour used to draw a tile.
func tileLook(t world.Tile) (rune, core.Color) {
	switch t {
	case world.Earth:
		return '░', core.ColorBrown
	case world.Brick:
		return '▓', core.ColorRed
	case world.Rock:
		return 'O', core.ColorWhite
	case world.Diamond:
		return '◆', core.ColorBrightCyan
	case world.Key:
		return 'K', core.ColorBrightYellow
	case world.Safe:
		return '$', core.ColorYellow
	case world.Blob:
		return '+', core.ColorBrightGreen
	default:
		return ' ', core.ColorDefault
	}
}

// Package metrics exposes Prometheus counters for played sessions, deaths and
// completed levels.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/rockfall/internal/core"
)

const namespace = "rockfall"

// Metrics holds the collectors. Safe for concurrent use.
type Metrics struct {
	sessions        prometheus.Counter
	active          prometheus.Gauge
	deaths          prometheus.Counter
	levelsCompleted *prometheus.CounterVec
	gamesCompleted  prometheus.Counter
	checkpoints     prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Game sessions started.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Game sessions currently running.",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deaths_total",
			Help:      "Lives lost to falling rocks or given up.",
		}),
		levelsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_completed_total",
			Help:      "Levels completed, by 1-based level number.",
		}, []string{"level"}),
		gamesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_completed_total",
			Help:      "Runs that completed every level.",
		}),
		checkpoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkpoints_saved_total",
			Help:      "Positions saved by players.",
		}),
	}

	reg.MustRegister(m.sessions, m.active, m.deaths, m.levelsCompleted, m.gamesCompleted, m.checkpoints)
	return m
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// SessionStarted counts a new session and marks it active.
func (m *Metrics) SessionStarted() {
	m.sessions.Inc()
	m.active.Inc()
}

// SessionEnded marks a session as no longer active.
func (m *Metrics) SessionEnded() {
	m.active.Dec()
}

// Recorder returns a core.Recorder feeding these metrics.
func (m *Metrics) Recorder() core.Recorder {
	return recorder{m: m}
}

type recorder struct {
	core.NopRecorder
	m *Metrics
}

func (r recorder) Died(int) {
	r.m.deaths.Inc()
}

func (r recorder) LevelCompleted(level, _, _ int) {
	r.m.levelsCompleted.WithLabelValues(levelLabel(level)).Inc()
}

func (r recorder) GameCompleted() {
	r.m.gamesCompleted.Inc()
}

func (r recorder) SaveCheckpoint(int, []byte) {
	r.m.checkpoints.Inc()
}

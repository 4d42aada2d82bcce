package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects store activity counters. A nil *Metrics is valid and
// records nothing, so tests and tooling can run without a registry.
type Metrics struct {
	mutations    *prometheus.CounterVec
	historyDepth prometheus.Gauge
	undoTotal    prometheus.Counter
	redoTotal    prometheus.Counter
	saveAttempts prometheus.Counter
	saveFailures prometheus.Counter
	saveDuration prometheus.Histogram
}

// NewMetrics registers the store's collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "electroplan",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Committed store mutations by operation.",
		}, []string{"op"}),
		historyDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "electroplan",
			Subsystem: "store",
			Name:      "history_depth",
			Help:      "Number of retained undo snapshots.",
		}),
		undoTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "electroplan",
			Subsystem: "store",
			Name:      "undo_total",
			Help:      "Applied undo operations.",
		}),
		redoTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "electroplan",
			Subsystem: "store",
			Name:      "redo_total",
			Help:      "Applied redo operations.",
		}),
		saveAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "electroplan",
			Subsystem: "store",
			Name:      "save_attempts_total",
			Help:      "Explicit remote save attempts.",
		}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "electroplan",
			Subsystem: "store",
			Name:      "save_failures_total",
			Help:      "Explicit remote save attempts that returned an error.",
		}),
		saveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "electroplan",
			Subsystem: "store",
			Name:      "save_duration_seconds",
			Help:      "Wall time of explicit remote saves.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.mutations,
			m.historyDepth,
			m.undoTotal,
			m.redoTotal,
			m.saveAttempts,
			m.saveFailures,
			m.saveDuration,
		)
	}
	return m
}

func (m *Metrics) observeMutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}

func (m *Metrics) setHistoryDepth(depth int) {
	if m == nil {
		return
	}
	m.historyDepth.Set(float64(depth))
}

func (m *Metrics) observeUndo() {
	if m == nil {
		return
	}
	m.undoTotal.Inc()
}

func (m *Metrics) observeRedo() {
	if m == nil {
		return
	}
	m.redoTotal.Inc()
}

func (m *Metrics) observeSave(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.saveAttempts.Inc()
	m.saveDuration.Observe(d.Seconds())
	if err != nil {
		m.saveFailures.Inc()
	}
}

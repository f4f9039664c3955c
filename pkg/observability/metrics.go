package observability

import (
	"net/http"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for easel_commands_total.
const (
	OutcomeApplied   = "applied"
	OutcomeCoalesced = "coalesced"
	OutcomeNoop      = "noop"
	OutcomeFault     = "fault"
)

// Metrics holds the Prometheus collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	commands *prometheus.CounterVec
	steps    *prometheus.CounterVec
	clears   prometheus.Counter
	depth    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easel_commands_total",
				Help: "Dispatched commands by type and outcome",
			},
			[]string{"cmd_type", "outcome"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easel_history_steps_total",
				Help: "Undo and redo steps by command type",
			},
			[]string{"direction", "cmd_type"},
		),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "easel_history_clears_total",
			Help: "Number of history clears",
		}),
		depth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "easel_history_depth",
				Help: "Current stack depth per document",
			},
			[]string{"doc", "stack"},
		),
	}
	m.registry.MustRegister(m.commands, m.steps, m.clears, m.depth)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns history hooks that record command outcomes.
func (m *Metrics) Hooks() domain.HistoryHooks {
	return domain.HistoryHooks{
		OnDispatch: func(cmd domain.Command, coalesced bool) {
			outcome := OutcomeApplied
			if coalesced {
				outcome = OutcomeCoalesced
			}
			m.commands.WithLabelValues(string(cmd.Type), outcome).Inc()
		},
		OnNoop: func(cmd domain.Command) {
			m.commands.WithLabelValues(string(cmd.Type), OutcomeNoop).Inc()
		},
		OnFault: func(cmd domain.Command, _ error) {
			m.commands.WithLabelValues(string(cmd.Type), OutcomeFault).Inc()
		},
		OnUndo: func(inverse domain.Command) {
			m.steps.WithLabelValues("undo", string(inverse.Type)).Inc()
		},
		OnRedo: func(cmd domain.Command) {
			m.steps.WithLabelValues("redo", string(cmd.Type)).Inc()
		},
		OnClear: func() {
			m.clears.Inc()
		},
	}
}

// DepthListener returns a history listener that mirrors the stack depths of
// doc into the easel_history_depth gauge.
func (m *Metrics) DepthListener(doc string) domain.HistoryListener {
	return func(ev domain.HistoryEvent) {
		m.depth.WithLabelValues(doc, "undo").Set(float64(ev.UndoDepth))
		m.depth.WithLabelValues(doc, "redo").Set(float64(ev.RedoDepth))
	}
}

// Forget drops the depth series of doc.
func (m *Metrics) Forget(doc string) {
	m.depth.DeleteLabelValues(doc, "undo")
	m.depth.DeleteLabelValues(doc, "redo")
}

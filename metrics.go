package msgcmp

import "github.com/prometheus/client_golang/prometheus"

// Dispatch outcome labels.
const (
	outcomeOK        = "ok"
	outcomeUnknown   = "unknown"
	outcomeMalformed = "malformed"
	outcomeHandled   = "handled"
	outcomeUnhandled = "unhandled"
)

// dispatchMetrics counts dispatch attempts by outcome. A nil receiver is a
// valid no-op so dispatch code never branches on whether metrics are
// configured.
type dispatchMetrics struct {
	dispatches *prometheus.CounterVec
}

func newDispatchMetrics(reg prometheus.Registerer) *dispatchMetrics {
	m := &dispatchMetrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "msgcmp",
			Name:      "dispatches_total",
			Help:      "Custom-id dispatch attempts partitioned by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.dispatches)
	return m
}

func (m *dispatchMetrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(outcome).Inc()
}

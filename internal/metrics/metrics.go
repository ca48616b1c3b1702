// Package metrics exposes ledger operation counters and balances to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpggio/smartcredit/internal/domain/ledger"
)

// Metrics owns a private registry so tests and multiple servers don't collide.
type Metrics struct {
	registry *prometheus.Registry
	ops      *prometheus.CounterVec
	records  *prometheus.GaugeVec
	pending  prometheus.Gauge
}

// New registers the ledger collectors plus the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartcredit",
			Name:      "operations_total",
			Help:      "Ledger operations by name and outcome.",
		}, []string{"op", "status"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "smartcredit",
			Name:      "records",
			Help:      "Records in the ledger by payment state.",
		}, []string{"state"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "smartcredit",
			Name:      "pending_amount",
			Help:      "Sum of unpaid record amounts.",
		}),
	}
	m.registry.MustRegister(
		m.ops,
		m.records,
		m.pending,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveOp counts one operation; a non-nil err marks it failed.
func (m *Metrics) ObserveOp(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ops.WithLabelValues(op, status).Inc()
}

// SetLedger publishes counts and the pending total of records.
func (m *Metrics) SetLedger(records []ledger.Customer) {
	sum := ledger.Summarize(records)
	m.records.WithLabelValues("paid").Set(float64(sum.Paid))
	m.records.WithLabelValues("unpaid").Set(float64(sum.Unpaid))
	m.pending.Set(ledger.TotalPending(records).InexactFloat64())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

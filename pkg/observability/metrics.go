package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Mutation engine metrics
	CellUpdatesApplied *prometheus.CounterVec
	CellUpdatesSkipped *prometheus.CounterVec
	BatchesTotal       *prometheus.CounterVec
	RowsCreatedTotal   *prometheus.CounterVec

	// Visibility metrics
	RowViewDenials *prometheus.CounterVec

	// Audit metrics
	AuditEntriesTotal *prometheus.CounterVec

	// Import/export metrics
	ImportsTotal *prometheus.CounterVec
	ExportsTotal *prometheus.CounterVec

	// Population gauges
	RowsTotal  *prometheus.GaugeVec
	UsersTotal prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		CellUpdatesApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnigrid_cell_updates_applied_total",
				Help: "Total number of cell updates applied",
			},
			[]string{"workspace"},
		),
		CellUpdatesSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnigrid_cell_updates_skipped_total",
				Help: "Total number of cell updates skipped for missing write access",
			},
			[]string{"workspace"},
		),
		BatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnigrid_mutation_batches_total",
				Help: "Total number of mutation batches processed",
			},
			[]string{"workspace"},
		),
		RowsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnigrid_rows_created_total",
				Help: "Total number of rows created",
			},
			[]string{"workspace", "source"},
		),
		RowViewDenials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnigrid_row_view_denials_total",
				Help: "Total number of rows filtered out of a listing by visibility rules",
			},
			[]string{"workspace"},
		),
		AuditEntriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnigrid_audit_entries_total",
				Help: "Total number of audit entries appended",
			},
			[]string{"workspace"},
		),
		ImportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnigrid_imports_total",
				Help: "Total number of workbook imports",
			},
			[]string{"workspace", "status"},
		),
		ExportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnigrid_exports_total",
				Help: "Total number of workbook and audit exports",
			},
			[]string{"format"},
		),
		RowsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "omnigrid_rows",
				Help: "Current number of rows held per workspace",
			},
			[]string{"workspace"},
		),
		UsersTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "omnigrid_users",
				Help: "Current number of users in the directory",
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.CellUpdatesApplied,
		m.CellUpdatesSkipped,
		m.BatchesTotal,
		m.RowsCreatedTotal,
		m.RowViewDenials,
		m.AuditEntriesTotal,
		m.ImportsTotal,
		m.ExportsTotal,
		m.RowsTotal,
		m.UsersTotal,
	)

	return m
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

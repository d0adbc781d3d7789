// Package metrics registra los contadores Prometheus del servicio.
// Cada Registry es independiente para que los tests no choquen con el registro global.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	InvoicesIssued     prometheus.Counter
	HistoriesRecorded  prometheus.Counter
	DuplicateUsersGone prometheus.Counter
	LowStockItems      prometheus.Gauge
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		reg: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		InvoicesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_invoices_issued_total",
			Help: "Invoices issued from clinical histories.",
		}),
		HistoriesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_histories_recorded_total",
			Help: "Clinical histories recorded.",
		}),
		DuplicateUsersGone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_duplicate_users_deleted_total",
			Help: "User rows removed by duplicate reconciliation.",
		}),
		LowStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clinic_inventory_low_stock_items",
			Help: "Inventory items below their minimum stock at the last check.",
		}),
	}

	reg.MustRegister(
		r.HTTPRequests, r.HTTPDuration,
		r.InvoicesIssued, r.HistoriesRecorded, r.DuplicateUsersGone, r.LowStockItems,
	)
	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer expone el registro (tests).
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

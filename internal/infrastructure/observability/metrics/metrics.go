// Package metrics colectores Prometheus de la API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/billing"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmacia_http_requests_total",
		Help: "Total de peticiones HTTP",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "farmacia_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	billsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmacia_bills_created_total",
		Help: "Facturas emitidas por tipo de empaque",
	}, []string{"packaging_type"})

	revenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "farmacia_revenue_total",
		Help: "Suma de total_price de las facturas emitidas",
	})
)

// ObserveHTTPRequest registra una petición. route es el patrón de la ruta, no el path
// concreto, para no crear una serie por cada ID.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// SalesRecorder implementa billing.SalesRecorder sobre los contadores globales.
type SalesRecorder struct{}

var _ billing.SalesRecorder = SalesRecorder{}

// BillCreated cuenta la factura y suma su total a los ingresos.
func (SalesRecorder) BillCreated(packagingType string, total decimal.Decimal) {
	billsCreated.WithLabelValues(packagingType).Inc()
	revenueTotal.Add(total.InexactFloat64())
}

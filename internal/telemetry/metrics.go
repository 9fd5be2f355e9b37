package telemetry

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "singlephase_calculations_total",
		Help: "Completed pipe segment calculations by flow regime.",
	}, []string{"flow_regime"})

	CalculationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "singlephase_calculation_errors_total",
		Help: "Failed pipe segment calculations by error kind.",
	}, []string{"kind"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "singlephase_http_request_duration_seconds",
		Help:    "HTTP request latency by route template.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// ObserveCalculation records one calculation outcome. kind is ignored when
// regime is set.
func ObserveCalculation(regime, kind string) {
	if regime != "" {
		CalculationsTotal.WithLabelValues(regime).Inc()
		return
	}
	CalculationErrorsTotal.WithLabelValues(kind).Inc()
}

// Instrument is a mux middleware timing requests per route template.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

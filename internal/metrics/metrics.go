package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "speciesmap_requests_total",
		Help: "Total HTTP requests by route",
	}, []string{"route"})
	HeatmapBuildDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "speciesmap_heatmap_build_duration_ms",
		Help:    "Hotspot aggregation duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500},
	})
	ClicksDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "speciesmap_clicks_dropped_total",
		Help: "Feature clicks dropped while a fly-to was pending",
	})
	LocateRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "speciesmap_locate_requests_total",
		Help: "Total locate-me requests",
	})
	LocateFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "speciesmap_locate_failures_total",
		Help: "Geolocation failures by classified code",
	}, []string{"code"})
	EmptyNearestTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "speciesmap_empty_nearest_total",
		Help: "Nearest searches with no eligible species",
	})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		HeatmapBuildDurationMs,
		ClicksDroppedTotal,
		LocateRequestsTotal,
		LocateFailuresTotal,
		EmptyNearestTotal,
	)
}

// Handler returns the /metrics endpoint handler
func Handler() http.Handler {
	return promhttp.Handler()
}

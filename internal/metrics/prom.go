package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "modelrace_build_info",
			Help:        "Build information",
			ConstLabels: prometheus.Labels{"component": "server"},
		},
		[]string{"date", "sha", "version"},
	)

	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modelrace_dispatch_total",
			Help: "Number of generation calls dispatched",
		},
		[]string{"model", "outcome"},
	)

	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "modelrace_dispatch_duration_seconds",
			Help:    "Wall-clock duration of generation calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	wordsPerSecond = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "modelrace_words_per_second",
			Help:    "Generated word rate per successful call",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200},
		},
		[]string{"model"},
	)
)

// Register registers all metrics with the provided registerer.
func Register(r prometheus.Registerer) {
	r.MustRegister(buildInfo, dispatchTotal, dispatchDuration, wordsPerSecond)
}

// SetBuildInfo sets the build info metric for the server.
func SetBuildInfo(version, sha, date string) {
	buildInfo.WithLabelValues(date, sha, version).Set(1)
}

// RecordDispatch increments the dispatch counter for a model.
func RecordDispatch(model string, success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	dispatchTotal.WithLabelValues(model, outcome).Inc()
}

// ObserveDispatchDuration records the duration of one call in seconds.
func ObserveDispatchDuration(model string, seconds float64) {
	dispatchDuration.WithLabelValues(model).Observe(seconds)
}

// ObserveWordsPerSecond records the word rate of one successful call.
func ObserveWordsPerSecond(model string, wps float64) {
	wordsPerSecond.WithLabelValues(model).Observe(wps)
}

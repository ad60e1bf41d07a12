package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the simulation service.
type Metrics struct {
	Simulations        *prometheus.CounterVec // labels: target_type={land,ocean}
	SimulationErrors   *prometheus.CounterVec // labels: reason={invalid_parameter}
	SimulationDuration prometheus.Histogram
	GlobalCatastrophes prometheus.Counter

	PublishErrors *prometheus.CounterVec // labels: publisher={kafka,feed}

	UsersRegistered prometheus.Counter
	FeedSubscribers prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "simulations_total",
			Help:      "Completed impact simulations by resolved target medium.",
		}, []string{"target_type"}),
		SimulationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "simulation_errors_total",
			Help:      "Rejected simulation requests by reason.",
		}, []string{"reason"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "impact_sim",
			Name:      "simulation_duration_seconds",
			Help:      "Time spent computing a single simulation, excluding publishing.",
			Buckets:   []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3},
		}),
		GlobalCatastrophes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "global_catastrophes_total",
			Help:      "Simulations whose yield reached the global catastrophe threshold.",
		}),
		PublishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "publish_errors_total",
			Help:      "Failed deliveries of completed simulations by publisher.",
		}, []string{"publisher"}),
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "users_registered_total",
			Help:      "Accounts created through signup.",
		}),
		FeedSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "impact_sim",
			Name:      "feed_subscribers",
			Help:      "Connected websocket feed subscribers.",
		}),
	}

	prometheus.MustRegister(
		m.Simulations,
		m.SimulationErrors,
		m.SimulationDuration,
		m.GlobalCatastrophes,
		m.PublishErrors,
		m.UsersRegistered,
		m.FeedSubscribers,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Simulations:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "impact_sim", Name: "simulations_total"}, []string{"target_type"}),
		SimulationErrors:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "impact_sim", Name: "simulation_errors_total"}, []string{"reason"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "impact_sim", Name: "simulation_duration_seconds"}),
		GlobalCatastrophes: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_sim", Name: "global_catastrophes_total"}),
		PublishErrors:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "impact_sim", Name: "publish_errors_total"}, []string{"publisher"}),
		UsersRegistered:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_sim", Name: "users_registered_total"}),
		FeedSubscribers:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "impact_sim", Name: "feed_subscribers"}),
	}
}

package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pthm-cable/rps/components"
	"github.com/pthm-cable/rps/sim"
)

// Metrics exports simulation state to Prometheus.
// Labels are limited to kind names so cardinality stays fixed.
type Metrics struct {
	registry *prometheus.Registry

	population   *prometheus.GaugeVec
	ticks        prometheus.Counter
	conversions  *prometheus.CounterVec
	matches      *prometheus.CounterVec
	matchLength  prometheus.Histogram
	tickDuration prometheus.Histogram
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		population: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rps_population",
			Help: "Current number of entities per kind",
		}, []string{"kind"}),
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "rps_ticks_total",
			Help: "Simulation ticks executed",
		}),
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rps_conversions_total",
			Help: "Type conversions applied, by the kind gained",
		}, []string{"kind"}),
		matches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rps_matches_total",
			Help: "Finished matches, by winning kind",
		}, []string{"winner"}),
		matchLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rps_match_ticks",
			Help:    "Ticks needed to finish a match",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10),
		}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rps_tick_duration_seconds",
			Help:    "Time spent in one simulation step",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),
	}
}

// Registry returns the registry holding the simulation collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveStep records one executed tick.
func (m *Metrics) ObserveStep(res sim.StepResult, counts sim.Counts, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickDuration.Observe(elapsed.Seconds())
	for _, conv := range res.Conversions {
		m.conversions.WithLabelValues(conv.To.String()).Inc()
	}
	m.SetPopulation(counts)
}

// SetPopulation updates the per-kind gauges.
func (m *Metrics) SetPopulation(counts sim.Counts) {
	if m == nil {
		return
	}
	m.population.WithLabelValues(components.Rock.String()).Set(float64(counts.Rock))
	m.population.WithLabelValues(components.Paper.String()).Set(float64(counts.Paper))
	m.population.WithLabelValues(components.Scissors.String()).Set(float64(counts.Scissors))
}

// ObserveMatch records a finished match.
func (m *Metrics) ObserveMatch(res MatchResult) {
	if m == nil || !res.Finished {
		return
	}
	m.matches.WithLabelValues(res.Winner.String()).Inc()
	m.matchLength.Observe(float64(res.Ticks))
}

// NewMetricsRouter returns an HTTP handler exposing /metrics and /healthz.
func NewMetricsRouter(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))

	return r
}

// ServeMetrics serves the metrics router on addr until ctx is cancelled.
func ServeMetrics(ctx context.Context, addr string, m *Metrics) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMetricsRouter(m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown", "error", err)
		}
	}()

	slog.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

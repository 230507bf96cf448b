package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Parse outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeUnrecognized = "unrecognized"
	OutcomeNoRanks      = "no_ranks"
	OutcomeRejected     = "rejected"
)

type Metrics struct {
	registry *prometheus.Registry

	parses      *prometheus.CounterVec
	generations *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permission_wizard",
			Name:      "config_parses_total",
			Help:      "Imported configs by detected dialect and outcome.",
		}, []string{"dialect", "outcome"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permission_wizard",
			Name:      "config_generations_total",
			Help:      "Generated configs by dialect and format.",
		}, []string{"dialect", "format"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permission_wizard",
			Name:      "ai_fallbacks_total",
			Help:      "External AI calls replaced by the local heuristic.",
		}, []string{"operation"}),
	}
	m.registry.MustRegister(m.parses, m.generations, m.fallbacks)
	return m
}

func (m *Metrics) ObserveParse(dialect string, outcome string) {
	if dialect == "" {
		dialect = "unknown"
	}
	m.parses.WithLabelValues(dialect, outcome).Inc()
}

func (m *Metrics) ObserveGeneration(dialect string, format string) {
	m.generations.WithLabelValues(dialect, format).Inc()
}

func (m *Metrics) ObserveFallback(operation string) {
	m.fallbacks.WithLabelValues(operation).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Infow("serving metrics", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("metrics server failed", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("failed to shut down metrics server", "error", err)
		}
	}()
}

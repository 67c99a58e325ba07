// Package metrics exports reduction counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vic/ivm/pkg/inet"
)

var (
	// rewrites counts interactions. Labels: rule
	rewrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ivm",
		Name:      "rewrites_total",
		Help:      "Interactions performed, by rule",
	}, []string{"rule"})

	dereferences = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ivm",
		Name:      "dereferences_total",
		Help:      "Book definitions instantiated into a net",
	})

	// runs counts finished runs. Labels: entry, status (ok, error)
	runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ivm",
		Name:      "runs_total",
		Help:      "Finished normalization runs",
	}, []string{"entry", "status"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ivm",
		Name:      "run_duration_seconds",
		Help:      "Wall time of a normalization run",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
	}, []string{"entry"})

	liveAgents = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ivm",
		Name:      "arena_live_agents",
		Help:      "Live agents in the arena of the last finished run",
	})
)

// Observe records one finished run.
func Observe(entry string, s inet.Stats, elapsed time.Duration, err error) {
	for rule, n := range s.Rules {
		if n > 0 {
			rewrites.WithLabelValues(rule.String()).Add(float64(n))
		}
	}
	dereferences.Add(float64(s.Dereferences))
	status := "ok"
	if err != nil {
		status = "error"
	}
	runs.WithLabelValues(entry, status).Inc()
	runDuration.WithLabelValues(entry).Observe(elapsed.Seconds())
	liveAgents.Set(float64(s.Live))
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Package metrics holds the process-wide prometheus collectors and the
// HTTP endpoint that exposes them.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	SourceRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricescope_source_refresh_total",
		Help: "Refresh attempts per source",
	}, []string{"source"})

	SourceRefreshErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricescope_source_refresh_errors_total",
		Help: "Failed refreshes per source",
	}, []string{"source"})

	LogsScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricescope_volume_logs_scanned_total",
		Help: "Pool logs inspected by the volume scanner",
	})

	SwapsCounted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricescope_volume_swaps_total",
		Help: "Swap events that contributed to a volume window",
	})
)

func init() {
	prometheus.MustRegister(
		SourceRefreshTotal,
		SourceRefreshErrors,
		LogsScanned,
		SwapsCounted,
	)
}

// Handler returns the HTTP handler serving /metrics and /healthz.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Serve exposes the collectors on addr until ctx is cancelled. An empty
// addr disables the endpoint.
func Serve(ctx context.Context, addr string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if addr == "" {
		logger.Debug("metrics endpoint disabled")
		return
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics endpoint listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics endpoint failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics endpoint shutdown", zap.Error(err))
		}
	}()
}

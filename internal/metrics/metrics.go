package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	widgetComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "overlay",
			Subsystem: "widgets",
			Name:      "computations_total",
			Help:      "Total number of overlay widget computations.",
		},
		[]string{"widget", "outcome"},
	)

	widgetDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "overlay",
			Subsystem: "widgets",
			Name:      "computation_duration_seconds",
			Help:      "Duration of overlay widget computations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"widget"},
	)

	widgetCells = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "overlay",
			Subsystem: "widgets",
			Name:      "cells",
			Help:      "Number of cells emitted per widget computation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"widget"},
	)

	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "overlay",
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Total number of unary gRPC requests handled.",
		},
		[]string{"method", "code"},
	)

	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "overlay",
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of unary gRPC requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "overlay",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Read-through cache lookups by key kind and result.",
		},
		[]string{"kind", "result"},
	)
)

func init() {
	Registry.MustRegister(
		widgetComputations,
		widgetDuration,
		widgetCells,
		rpcRequests,
		rpcDuration,
		cacheLookups,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordWidgetComputation records one pass of a widget pipeline. Outcome is
// "ok", "empty" or "error".
func RecordWidgetComputation(widget, outcome string, cells int, duration time.Duration) {
	if duration <= 0 {
		duration = time.Microsecond
	}
	widgetComputations.WithLabelValues(widget, outcome).Inc()
	widgetDuration.WithLabelValues(widget).Observe(duration.Seconds())
	if outcome == "ok" {
		widgetCells.WithLabelValues(widget).Observe(float64(cells))
	}
}

// RecordCacheLookup counts a cache lookup. Result is "hit", "miss" or "error".
func RecordCacheLookup(kind, result string) {
	cacheLookups.WithLabelValues(kind, result).Inc()
}

// UnaryServerInterceptor counts and times every unary call by method and status code.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		rpcRequests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		rpcDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		return resp, err
	}
}

// Package observability exposes the application's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthFailuresTotal counts rejected authentication attempts by reason.
	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tastebook_auth_failures_total",
		Help: "Total number of rejected authentication attempts by reason",
	}, []string{"reason"})

	// DatabaseQueryLatency records database query latency in seconds.
	DatabaseQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tastebook_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// UploadsTotal counts stored image uploads.
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tastebook_uploads_total",
		Help: "Total number of stored image uploads",
	})

	// UploadBytesTotal counts bytes written by the upload store.
	UploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tastebook_upload_bytes_total",
		Help: "Total number of bytes written by the upload store",
	})

	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tastebook_redis_errors_total",
		Help: "Total number of failed Redis commands by command name",
	}, []string{"command"})
)

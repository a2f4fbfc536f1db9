package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 入站 HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resumedash_http_request_duration_seconds",
			Help:    "Dashboard HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 远程 API 调用延迟（秒）
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resumedash_api_request_duration_seconds",
			Help:    "Remote developer API call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
		[]string{"operation", "method", "outcome"},
	)

	ToastsShown = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumedash_toasts_shown_total",
			Help: "Total number of toast notifications shown",
		},
		[]string{"type"},
	)

	BlobOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumedash_blob_operations_total",
			Help: "Blob storage operations by kind and status",
		},
		[]string{"operation", "status"}, // status: success, failed
	)

	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumedash_token_refresh_total",
			Help: "Identity token refresh attempts",
		},
		[]string{"status"},
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordAPIRequest 记录远程 API 调用
func RecordAPIRequest(operation, method, outcome string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(operation, method, outcome).Observe(duration.Seconds())
}

func IncrementToast(toastType string) {
	ToastsShown.WithLabelValues(toastType).Inc()
}

func IncrementBlobOperation(operation string, err error) {
	BlobOperations.WithLabelValues(operation, statusLabel(err)).Inc()
}

func IncrementTokenRefresh(err error) {
	TokenRefreshes.WithLabelValues(statusLabel(err)).Inc()
}

// Middleware observes every request using the matched route template, so ids
// in the path do not create new series.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func statusLabel(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}

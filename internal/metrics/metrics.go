package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "authapi_http_requests_total",
		Help: "HTTP requests by method and status code.",
	}, []string{"method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "authapi_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	LoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authapi_logins_total",
		Help: "Successful logins.",
	})

	RotationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authapi_refresh_rotations_total",
		Help: "Successful refresh token rotations.",
	})

	TokenReuseTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authapi_refresh_token_reuse_total",
		Help: "Revoked refresh tokens presented again. Each one is a potential compromise signal.",
	})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request count and latency for every route it wraps.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(recorder, request)

		requestsTotal.WithLabelValues(request.Method, strconv.Itoa(recorder.status)).Inc()
		requestDuration.WithLabelValues(request.Method).Observe(time.Since(start).Seconds())
	})
}

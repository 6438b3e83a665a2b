package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const unmatchedRoute = "unmatched"

var defaultBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10}

// Metrics observes request durations by status code, method and route
// pattern. Requests that match no route share one label to keep cardinality
// bounded.
func Metrics(reg prometheus.Registerer) func(http.Handler) http.Handler {
	durations := registerHTTPMetrics(reg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			// ServeMux records the matched pattern on the request it was given.
			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}

			durations.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, route).
				Observe(time.Since(start).Seconds())
		})
	}
}

func registerHTTPMetrics(reg prometheus.Registerer) *prometheus.HistogramVec {
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "krisik_bazar",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving HTTP requests.",
		Buckets:   defaultBuckets,
	}, []string{"code", "method", "route"})

	if err := reg.Register(durations); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		panic(err)
	}
	return durations
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/shopcart/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware 以 chi route pattern 當 handler label
func MetricsMiddleware(m *metrics.ServerMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := NewStatusRecoder(w)
			next.ServeHTTP(recoder, r)

			pattern := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					pattern = p
				}
			}
			m.Requests.WithLabelValues(pattern, r.Method, strconv.Itoa(recoder.Status())).Inc()
			m.LatencyMS.WithLabelValues(pattern).Observe(float64(time.Since(start).Milliseconds()))
		})
	}
}

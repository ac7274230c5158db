package middleware

import (
	"net/http"
	"time"

	"github.com/barbarashop/storefront-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// Metrics records per-route request counters and latencies. It reads the chi
// route pattern after the handler runs so path parameters do not explode the
// label set.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			httpMetrics.ObserveRequest(r.Method, route, rec.status, time.Since(start))
		})
	}
}

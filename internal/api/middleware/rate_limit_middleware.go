package middleware

import (
	"net"
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/pkg/ratelimit"
)

// NewRateLimitMiddleware 依 client IP 限流, limiter 由 appcontext 建立
// 需放在 middleware.RealIP 之後
func NewRateLimitMiddleware(limiter ratelimit.ILimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ratelimit.WithClient(r.Context(), clientIP(r))
			if !limiter.Allow(ctx) {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

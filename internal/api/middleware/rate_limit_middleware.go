package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/fulfillment/internal/api/response"
	"github.com/RoyceAzure/lab/fulfillment/internal/ratelimit"
)

// RateLimitMiddleware token 用完回 429
func RateLimitMiddleware(limiter ratelimit.Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context()) {
				response.ErrorJSON(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

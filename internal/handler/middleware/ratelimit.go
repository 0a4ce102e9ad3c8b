package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"qr-seat-reservation/internal/handler/httperr"
	"qr-seat-reservation/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// RateLimit takes one token per request, keyed by the authenticated user when
// there is one and by client IP otherwise. A nil limiter disables the check,
// and a limiter error lets the request through.
func RateLimit(limiter RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		decision, err := limiter.Allow(c.Request.Context(), rateKey(c, scope))
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "scope", scope, "error", err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(decision.Remaining, 0), 10))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retryAfter, 1)))

			resp := httperr.Response{Status: http.StatusTooManyRequests}
			resp.Error.Message = "Too many requests"
			c.AbortWithStatusJSON(http.StatusTooManyRequests, resp)
			return
		}

		c.Next()
	}
}

func rateKey(c *gin.Context, scope string) string {
	if userID, ok := GetUserID(c); ok {
		return scope + ":user:" + userID.String()
	}
	return scope + ":ip:" + c.ClientIP()
}

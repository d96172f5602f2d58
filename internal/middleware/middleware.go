package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	appcontext "github.com/metricasboss/summit-cert-api/internal/app_context"
	ratelimiter "github.com/metricasboss/summit-cert-api/internal/rate_limiter"
)

type Middleware struct {
	rateLimiter *ratelimiter.FixedWindowRateLimiter
	app         *appcontext.Application
}

func NewMiddleware(app *appcontext.Application,
	rateLimiter *ratelimiter.FixedWindowRateLimiter,
) *Middleware {
	return &Middleware{app: app, rateLimiter: rateLimiter}
}

func (m *Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	if !m.rateLimiter.Enabled() {
		ctx.Next()
		return
	}

	allowed, retryAfter := m.rateLimiter.Allow(ctx.ClientIP())
	if !allowed {
		ctx.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
		ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"ok":    false,
			"error": "too many requests",
		})
		return
	}

	ctx.Next()
}

// RequestLogger tags every request with a correlation id and logs method,
// path, status and latency once the handler chain completes.
func (m *Middleware) RequestLogger(ctx *gin.Context) {
	requestId, err := gonanoid.New()
	if err != nil {
		requestId = "unknown"
	}

	ctx.Set("requestId", requestId)
	ctx.Header("X-Request-Id", requestId)

	start := time.Now()
	ctx.Next()

	m.app.Logger.Infow("request completed",
		"requestId", requestId,
		"method", ctx.Request.Method,
		"path", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"latency", time.Since(start).String(),
	)
}

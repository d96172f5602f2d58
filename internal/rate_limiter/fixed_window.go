package ratelimiter

import (
	"sync"
	"time"

	"github.com/metricasboss/summit-cert-api/internal/config"
	"go.uber.org/zap"
)

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindowRateLimiter counts requests per client in fixed time frames.
// A client's counter resets when its frame expires.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	cfg     config.RateLimiterConfig
	logger  *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		cfg:     cfg,
		logger:  logger,
	}
}

func (rl *FixedWindowRateLimiter) Enabled() bool {
	return rl.cfg.Enabled
}

// Allow reports whether the client may proceed, and when not, how long until
// its window resets.
func (rl *FixedWindowRateLimiter) Allow(clientID string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	w, ok := rl.clients[clientID]
	if !ok || now.After(w.resetAt) {
		rl.clients[clientID] = &window{count: 1, resetAt: now.Add(rl.cfg.TimeFrame)}
		return true, 0
	}

	if w.count >= rl.cfg.RequestsPerTimeFrame {
		rl.logger.Warnw("rate limit exceeded", "client", clientID, "count", w.count)
		return false, time.Until(w.resetAt)
	}

	w.count++
	return true, 0
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/gistworks/skim/config"
	"github.com/gistworks/skim/models"
)

const (
	limiterSweepEvery = 5 * time.Minute
	limiterStaleAfter = time.Hour
)

// limiterPool hands out one token bucket per caller identity and forgets
// buckets idle longer than limiterStaleAfter, keeping memory bounded.
type limiterPool struct {
	mu    sync.Mutex
	rps   rate.Limit
	burst int
	seen  map[string]*pooledLimiter
}

type pooledLimiter struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(cfg config.RateLimitConfig) *limiterPool {
	p := &limiterPool{
		rps:   rate.Limit(cfg.RequestsPerSecond),
		burst: cfg.Burst,
		seen:  make(map[string]*pooledLimiter),
	}
	go p.sweep()
	return p
}

// allow consumes one token from identity's bucket, creating it on first
// sight.
func (p *limiterPool) allow(identity string) bool {
	p.mu.Lock()
	pl, ok := p.seen[identity]
	if !ok {
		pl = &pooledLimiter{bucket: rate.NewLimiter(p.rps, p.burst)}
		p.seen[identity] = pl
	}
	pl.lastSeen = time.Now()
	p.mu.Unlock()

	return pl.bucket.Allow()
}

func (p *limiterPool) sweep() {
	ticker := time.NewTicker(limiterSweepEvery)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-limiterStaleAfter)
		p.mu.Lock()
		for id, pl := range p.seen {
			if pl.lastSeen.Before(cutoff) {
				delete(p.seen, id)
			}
		}
		p.mu.Unlock()
	}
}

// RateLimit enforces a per-caller token bucket via golang.org/x/time/rate.
// The caller identity is the authenticated API key when auth ran, the client
// IP otherwise.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	pool := newLimiterPool(cfg)

	return func(c *gin.Context) {
		identity := c.ClientIP()
		if key, ok := c.Get(apiKeyContextKey); ok {
			identity = key.(string)
		}

		if !pool.allow(identity) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeRateLimited,
					Message: "rate limit exceeded, please slow down",
				},
			})
			return
		}
		c.Next()
	}
}

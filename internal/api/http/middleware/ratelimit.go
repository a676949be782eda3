package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipBackstopFactor bounds what rotating the session header can buy: all
// session buckets behind one IP share a backstop of this many times the
// per-session allowance.
const ipBackstopFactor = 4

// RateLimiter applies a token-bucket limit per client. Requests carrying an
// X-Session-Id header get a bucket scoped by (client IP, session), so a forged
// header cannot drain another client's allowance and a rotated one is still
// capped by the per-IP backstop. Requests without the header are limited per
// IP, as a plain widget client would be.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	stop     chan struct{}
	stopOnce sync.Once
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute sustained requests with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go rl.evictLoop()
	return rl
}

// Middleware returns the gin handler enforcing the limit. Rejected requests
// get a 429 with a Retry-After hint.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		sid := strings.TrimSpace(c.GetHeader("X-Session-Id"))

		var allowed bool
		if sid == "" {
			allowed = rl.allow("ip:"+ip, 1)
		} else {
			allowed = rl.allow("session:"+ip+":"+sid, 1) &&
				rl.allow("ipcap:"+ip, ipBackstopFactor)
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(rl.rate)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": "rate limit exceeded, slow down",
			})
			return
		}
		c.Next()
	}
}

// Stop ends the background eviction loop. Existing buckets keep working.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) allow(key string, factor int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate*rate.Limit(factor), rl.burst*factor)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

// evictLoop drops limiters idle for over an hour so the map stays bounded.
func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		cutoff := time.Now().Add(-time.Hour)
		for key, cl := range rl.limiters {
			if cl.lastSeen.Before(cutoff) {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

func retryAfterSeconds(r rate.Limit) int {
	if r <= 0 {
		return 60
	}
	secs := int(1 / float64(r))
	if secs < 1 {
		secs = 1
	}
	return secs
}

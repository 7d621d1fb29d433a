package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"bisnispintar/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
}

// RateLimiter is a per-IP fixed-window limiter. Each instance owns its map.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*rateEntry
}

// NewRateLimiter allows limit requests per window per client IP. limit <= 0 disables it.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*rateEntry),
	}
}

// Handler returns the gin middleware.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}
		allowed, retryAfter := rl.allow(c.ClientIP())
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Terlalu banyak permintaan. Coba lagi sebentar lagi."))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &rateEntry{windowEnd: now.Add(rl.window)}
		rl.entries[ip] = entry
	}
	entry.count++
	if entry.count > rl.limit {
		return false, entry.windowEnd.Sub(now)
	}
	return true, 0
}

// Purge drops expired windows and reports how many were removed.
func (rl *RateLimiter) Purge() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	purged := 0
	for ip, entry := range rl.entries {
		if now.After(entry.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
	}
	return purged
}

// RunPurge calls Purge every interval until stop is closed, so IPs that never
// return do not accumulate.
func (rl *RateLimiter) RunPurge(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := rl.Purge(); n > 0 {
				log.Debug().Int("entries_purged", n).Msg("rate limiter map purged")
			}
		}
	}
}

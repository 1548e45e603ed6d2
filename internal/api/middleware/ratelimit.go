package middleware

import (
	"log"
	"net"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/response"
)

// RateLimiter hands out one token bucket per client IP. Idle buckets expire
// from the cache after ten minutes.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *cache.Cache
}

// NewRateLimiter allows perSecond requests per client with a burst of twice
// that (at least 1). A non-positive perSecond disables limiting.
func NewRateLimiter(perSecond float64) *RateLimiter {
	burst := int(2 * perSecond)
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: cache.New(10*time.Minute, 20*time.Minute),
	}
}

// Handler is the middleware. It relies on chi's RealIP having run first.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.limiter(clientIP(r)).Allow() {
			log.Printf("Rate limit exceeded for %s", clientIP(r))
			response.RespondTooManyRequests(w, rl.tokenInterval())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	if l, ok := rl.limiters.Get(key); ok {
		rl.limiters.SetDefault(key, l)
		return l.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	if err := rl.limiters.Add(key, l, cache.DefaultExpiration); err != nil {
		// Another request created the bucket first.
		if existing, ok := rl.limiters.Get(key); ok {
			return existing.(*rate.Limiter)
		}
	}
	return l
}

// tokenInterval is the time to earn one token.
func (rl *RateLimiter) tokenInterval() time.Duration {
	return time.Duration(float64(time.Second) / float64(rl.limit))
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

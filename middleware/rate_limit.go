package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per client IP and forgets buckets
// that have been idle for a while
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}

	c.lastSeen = time.Now()
	return c.limiter
}

func (l *ipLimiter) cleanup(ttl, interval time.Duration) {
	for {
		time.Sleep(interval)

		l.mu.Lock()
		for ip, c := range l.clients {
			if time.Since(c.lastSeen) > ttl {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// NewRateLimiterMiddleware throttles each client IP to rps sustained
// requests per second with the given burst headroom
func NewRateLimiterMiddleware(rps, burst int) gin.HandlerFunc {
	l := &ipLimiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
	}

	go l.cleanup(3*time.Minute, time.Minute)

	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}

		c.Next()
	}
}

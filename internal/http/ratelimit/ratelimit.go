package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex
)

// GetVisitor returns the token bucket for a client identity (actor or
// remote address), creating it on first sight.
func GetVisitor(id string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[id]
	if !exists {
		limiter := rate.NewLimiter(5, 10) // 5 requests/sec, burst of 10
		visitors[id] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func StartVisitorCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for id, v := range visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(visitors, id)
			}
		}
		mu.Unlock()
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	visitors = make(map[string]*clientLimiter)
	mu.Unlock()
}

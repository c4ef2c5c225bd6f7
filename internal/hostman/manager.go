package hostman

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Manager hands out one token bucket per host so the crawl stays polite.
type Manager struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rps      float64 // requests per second per host; <= 0 disables limiting
}

// New returns a ready Manager.
func New(rps float64) *Manager {
	return &Manager{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until u's host may be fetched again or ctx is done.
func (m *Manager) Wait(ctx context.Context, u *url.URL) error {
	return m.limiter(strings.ToLower(u.Hostname())).Wait(ctx)
}

// Hosts returns how many hosts have been seen.
func (m *Manager) Hosts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.limiters)
}

func (m *Manager) limiter(host string) *rate.Limiter {
	m.mu.RLock()
	l, ok := m.limiters[host]
	m.mu.RUnlock()
	if ok {
		return l
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.limiters[host]; ok {
		return l
	}
	l = m.newLimiter()
	m.limiters[host] = l
	return l
}

func (m *Manager) newLimiter() *rate.Limiter {
	if m.rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(m.rps) // burst = rps
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(m.rps), burst)
}

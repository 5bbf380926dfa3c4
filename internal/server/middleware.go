package server

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// ipLimiter enforces a per-client-IP request rate.
type ipLimiter struct {
	mu       sync.Mutex
	perMin   int
	limiters map[string]*rate.Limiter
}

func newIPLimiter(perMin int) *ipLimiter {
	return &ipLimiter{
		perMin:   perMin,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(l.perMin)/60.0), l.perMin)
		l.limiters[ip] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// rateLimit rejects clients exceeding the per-IP budget.
func (s *Server) rateLimit(c *fiber.Ctx) error {
	if !s.limiter.allow(c.IP()) {
		return ErrTooManyRequests()
	}
	return c.Next()
}

// requireInvite gates access behind the X-Invite-Token header when an invite
// token is configured.
func (s *Server) requireInvite(c *fiber.Ctx) error {
	if s.cfg.InviteToken == "" {
		return c.Next()
	}
	if c.Get("X-Invite-Token") != s.cfg.InviteToken {
		return ErrUnauthorized("invalid or missing invite token")
	}
	return c.Next()
}

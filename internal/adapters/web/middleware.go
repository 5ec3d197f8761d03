package web

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"listingpilot/internal/domain"
	"listingpilot/pkg/log"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
	HeaderUserTier  = "X-User-Tier"

	principalKey = "principal"
)

// RateLimiter counts requests per client IP over a sliding window.
type RateLimiter struct {
	hits   map[string][]time.Time
	mu     sync.Mutex
	limit  int
	window time.Duration
	now    func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a new rate limiter. A limit of zero or less
// disables it.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go rl.cleanup(5 * time.Minute)
	return rl
}

// Allow records a request from ip and reports whether it is within the limit.
// Rejected requests are not recorded.
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.limit <= 0 {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	recent := pruned(rl.hits[ip], now.Add(-rl.window))
	if len(recent) >= rl.limit {
		rl.hits[ip] = recent
		return false
	}
	rl.hits[ip] = append(recent, now)
	return true
}

// Middleware rejects requests over the limit with domain.ErrRateLimited.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.Allow(c.IP()) {
			log.GlobalWarnCtx(c.UserContext(), "rate limit exceeded", "ip", c.IP(), "path", c.Path())
			return domain.ErrRateLimited
		}
		return c.Next()
	}
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup periodically removes old entries from the rate limiter.
func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := rl.now().Add(-rl.window)
			for ip, timestamps := range rl.hits {
				if recent := pruned(timestamps, cutoff); len(recent) == 0 {
					delete(rl.hits, ip)
				} else {
					rl.hits[ip] = recent
				}
			}
			rl.mu.Unlock()
		}
	}
}

func pruned(timestamps []time.Time, cutoff time.Time) []time.Time {
	var recent []time.Time
	for _, t := range timestamps {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent
}

// RequestIDConfig returns the configuration for Fiber's requestid middleware.
// Uses X-Request-ID header, generates UUID if not present.
func RequestIDConfig() requestid.Config {
	return requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: "requestid",
	}
}

// RequestIDToContextMiddleware bridges Fiber's requestid to pkg/log context.
// Must be used AFTER requestid.New() middleware.
func RequestIDToContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			c.SetUserContext(log.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// PrincipalMiddleware reads the caller identity forwarded by the identity
// gateway. Requests without a user ID become guests metered by client IP.
func PrincipalMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := principalFromHeaders(c)
		c.Locals(principalKey, p)
		c.SetUserContext(log.WithFields(c.UserContext(), "user_id", p.UserID))
		return c.Next()
	}
}

func principalFromHeaders(c *fiber.Ctx) domain.Principal {
	userID := strings.TrimSpace(c.Get(HeaderUserID))
	if userID == "" {
		return domain.Principal{UserID: "anon:" + c.IP(), Tier: domain.TierFree, Guest: true}
	}
	return domain.Principal{
		UserID: userID,
		Email:  strings.TrimSpace(c.Get(HeaderUserEmail)),
		Tier:   parseTier(c.Get(HeaderUserTier)),
	}
}

// parseTier falls back to the free tier for unknown values.
func parseTier(s string) domain.Tier {
	switch t := domain.Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case domain.TierPro, domain.TierBusiness:
		return t
	default:
		return domain.TierFree
	}
}

// PrincipalFrom returns the principal stored by PrincipalMiddleware.
func PrincipalFrom(c *fiber.Ctx) domain.Principal {
	if p, ok := c.Locals(principalKey).(domain.Principal); ok {
		return p
	}
	return domain.Principal{UserID: "anon:" + c.IP(), Tier: domain.TierFree, Guest: true}
}

// RequestLoggerMiddleware logs HTTP requests in structured JSON format.
// Errors from the chain are rendered here so the logged status is the one
// sent to the client.
// Must be used AFTER RequestIDToContextMiddleware.
func RequestLoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		latency := time.Since(start)
		status := c.Response().StatusCode()

		ctx := c.UserContext()
		fields := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"ip", c.IP(),
			"user_agent", c.Get("User-Agent"),
		}
		if p, ok := c.Locals(principalKey).(domain.Principal); ok {
			fields = append(fields, "user_id", p.UserID)
		}
		if chainErr != nil {
			fields = append(fields, "error", chainErr.Error())
		}

		switch {
		case status >= 500:
			log.GlobalErrorCtx(ctx, "request completed", fields...)
		case status >= 400:
			log.GlobalWarnCtx(ctx, "request completed", fields...)
		default:
			log.GlobalInfoCtx(ctx, "request completed", fields...)
		}

		return nil
	}
}

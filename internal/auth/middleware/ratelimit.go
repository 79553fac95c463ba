package middleware

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Decision is the outcome of admitting one request against a client's window.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window request counter keyed by client address. The
// window map is owned by the limiter instance, not a package-level singleton,
// so each app (and each test) gets its own state.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	window  time.Duration
}

func NewRateLimiter(limit int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		window:  windowDuration,
	}
}

// Admit counts one request for key and reports whether it fits the current
// window. Over-limit requests are counted too, so the rejecting response
// still carries an accurate window state.
func (rl *RateLimiter) Admit(key string) Decision {
	now := time.Now()

	rl.mu.Lock()
	w, ok := rl.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(rl.window)}
		rl.windows[key] = w
	}
	w.count++
	count, resetAt := w.count, w.resetAt
	rl.mu.Unlock()

	remaining := rl.limit - count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= rl.limit,
		Limit:     rl.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// Handle returns fiber middleware that throttles by client key and attaches
// the rate-limit headers to every response.
func (rl *RateLimiter) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := rl.Admit(ClientKey(c))

		c.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retryAfter := ceilSeconds(time.Until(decision.ResetAt))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "too many requests",
			})
		}

		return c.Next()
	}
}

// ClientKey derives the throttling key for a request: the first entry of the
// X-Forwarded-For header, else the first resolved proxy-chain address, else
// the peer address, else a literal fallback.
func ClientKey(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		first := forwarded
		if i := strings.IndexByte(first, ','); i >= 0 {
			first = first[:i]
		}
		// Fiber header values are zero-copy views into a request buffer
		// that fasthttp reuses; clone before the key outlives the request.
		if first = strings.TrimSpace(first); first != "" {
			return strings.Clone(first)
		}
	}

	if ips := c.IPs(); len(ips) > 0 && ips[0] != "" {
		return strings.Clone(ips[0])
	}

	if ip := c.IP(); ip != "" {
		return strings.Clone(ip)
	}

	return "unknown"
}

func ceilSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-fitness-tracker/internal/observability"
	"github.com/oksasatya/go-fitness-tracker/pkg/response"
)

// ipFromCtx prefers the address resolved by RealIP.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(ctxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc picks the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath gives each route its own per-IP bucket.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "path:" + routeOf(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID limits per authenticated user; must run after Auth.
// Anonymous callers fall back to their IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		u := CurrentUser(c)
		if u == nil {
			return "user:anon:ip:" + ipFromCtx(c)
		}
		return "user:" + strconv.FormatInt(u.ID, 10)
	}
}

// AllowFunc returns true for requests that skip the limiter.
type AllowFunc func(*gin.Context) bool

// Limit describes one fixed-window limiter.
type Limit struct {
	Scope  string // metric label and key prefix, e.g. "login"
	Max    int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc
}

// fixed window: INCR, set the expiry on the first hit, return count and ttl
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// RateLimit enforces l against Redis. A nil client or incomplete Limit yields
// a pass-through handler, and Redis errors let the request through.
func RateLimit(rdb *redis.Client, l Limit) gin.HandlerFunc {
	if rdb == nil || l.Max <= 0 || l.Window <= 0 || l.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	prefix := "rl:" + l.Scope + ":"
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (l.Allow != nil && l.Allow(c)) {
			c.Next()
			return
		}

		res, err := fixedWindowScript.Run(c.Request.Context(), rdb, []string{prefix + l.Key(c)}, l.Window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}
		count := int(res[0])
		resetSec := 0
		if res[1] > 0 {
			resetSec = int((time.Duration(res[1]) * time.Millisecond).Round(time.Second).Seconds())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining(l.Max, count)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > l.Max {
			observability.RecordRateLimited(l.Scope)
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Abort(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

func remaining(max, count int) int {
	if count >= max {
		return 0
	}
	return max - count
}

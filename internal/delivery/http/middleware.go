package http

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter is a fixed-window per-client limiter. Windows are
// anchored at each client's first request; expired buckets are pruned
// lazily on the next check, so there is no background goroutine to
// manage.
type RateLimiter struct {
	mu          sync.Mutex
	window      time.Duration
	maxRequests int
	buckets     map[string]*rateBucket
	now         func() time.Time
}

type rateBucket struct {
	count     int
	startedAt time.Time
}

func NewRateLimiter(window time.Duration, maxRequests int) *RateLimiter {
	return &RateLimiter{
		window:      window,
		maxRequests: maxRequests,
		buckets:     make(map[string]*rateBucket),
		now:         time.Now,
	}
}

// Allow records one request for key. When the window is exhausted it
// reports false with the time until the window resets; a denied request
// does not consume from the next window.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for bucketKey, bucket := range l.buckets {
		if now.Sub(bucket.startedAt) > l.window {
			delete(l.buckets, bucketKey)
		}
	}

	bucket, ok := l.buckets[key]
	if !ok || now.Sub(bucket.startedAt) > l.window {
		l.buckets[key] = &rateBucket{count: 1, startedAt: now}
		return true, 0
	}

	if bucket.count >= l.maxRequests {
		return false, l.window - now.Sub(bucket.startedAt)
	}

	bucket.count++
	return true, 0
}

// Middleware rejects over-limit clients with 429 and a Retry-After hint.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := l.Allow(clientKey(c))
		if !ok {
			seconds := int(retryAfter.Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
			})
			return
		}
		c.Next()
	}
}

// clientKey identifies the caller: the app's device id when present,
// otherwise the first forwarded hop, otherwise the peer address.
func clientKey(c *gin.Context) string {
	if deviceID := strings.TrimSpace(c.GetHeader("X-Device-ID")); deviceID != "" {
		return deviceID
	}
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return c.ClientIP()
}

// RequestLogger emits one structured line per request, leveled by
// status class.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(started)),
			zap.String("client", clientKey(c)),
			zap.String("request_id", requestid.Get(c)),
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowWithinWindow(t *testing.T) {
	limiter := NewRateLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		ok, _ := limiter.Allow("device-1")
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, retryAfter := limiter.Allow("device-1")
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))

	// Other clients have their own bucket.
	ok, _ = limiter.Allow("device-2")
	assert.True(t, ok)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(time.Minute, 1)
	limiter.now = func() time.Time { return now }

	ok, _ := limiter.Allow("device-1")
	require.True(t, ok)
	ok, _ = limiter.Allow("device-1")
	require.False(t, ok)

	now = now.Add(61 * time.Second)
	ok, _ = limiter.Allow("device-1")
	assert.True(t, ok)
}

// Denied requests must not extend or refill the window.
func TestRateLimiter_DenialDoesNotCount(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(time.Minute, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("device-1")
	for i := 0; i < 5; i++ {
		ok, _ := limiter.Allow("device-1")
		require.False(t, ok)
	}

	now = now.Add(61 * time.Second)
	ok, _ := limiter.Allow("device-1")
	assert.True(t, ok)
}

func TestRateLimiter_PrunesExpiredBuckets(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(time.Minute, 5)
	limiter.now = func() time.Time { return now }

	limiter.Allow("device-1")
	limiter.Allow("device-2")

	now = now.Add(2 * time.Minute)
	limiter.Allow("device-3")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.buckets, 1)
}

func TestRateLimitMiddleware_RejectsWithRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(time.Minute, 1)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(deviceID string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Device-ID", deviceID)
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("device-1").Code)

	blocked := do("device-1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	// A different device id is a different bucket even from the same peer.
	assert.Equal(t, http.StatusOK, do("device-2").Code)
}

func TestClientKey_Precedence(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(headers map[string]string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		for k, v := range headers {
			c.Request.Header.Set(k, v)
		}
		return c
	}

	c := newContext(map[string]string{
		"X-Device-ID":     "device-9",
		"X-Forwarded-For": "10.0.0.1, 10.0.0.2",
	})
	assert.Equal(t, "device-9", clientKey(c))

	c = newContext(map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"})
	assert.Equal(t, "10.0.0.1", clientKey(c))

	c = newContext(nil)
	assert.NotEmpty(t, clientKey(c))
}

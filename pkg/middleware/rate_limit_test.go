package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func doGet(r *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddlewareBlocksAfterBurst(t *testing.T) {
	r := limitedRouter(RateLimitMiddleware(0.001, 2))

	addr := "10.1.1.1:1000"
	assert.Equal(t, http.StatusOK, doGet(r, addr))
	assert.Equal(t, http.StatusOK, doGet(r, addr))
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, addr))
}

func TestRateLimitMiddlewareKeysByClient(t *testing.T) {
	r := limitedRouter(RateLimitMiddleware(0.001, 1))

	assert.Equal(t, http.StatusOK, doGet(r, "10.2.2.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, "10.2.2.1:1000"))
	// a different client has its own bucket
	assert.Equal(t, http.StatusOK, doGet(r, "10.2.2.2:1000"))
}

func TestRedisRateLimitMiddleware(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	// allowed per window = floor(rps*window) + burst = 2
	r := limitedRouter(RedisRateLimitMiddleware(client, 0, 2, time.Minute))

	addr := "10.3.3.1:1000"
	assert.Equal(t, http.StatusOK, doGet(r, addr))
	assert.Equal(t, http.StatusOK, doGet(r, addr))
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, addr))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(NewClientRateLimiter(rps, burst)))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return router
}

func TestRateLimitAllowsWithinBudget(t *testing.T) {
	router := newLimitedRouter(100, 10)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	router := newLimitedRouter(0, 1)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "Rate limit exceeded")
}

func TestLimiterIsPerClient(t *testing.T) {
	rl := NewClientRateLimiter(1, 1)
	a := rl.GetLimiter("10.0.0.1")
	b := rl.GetLimiter("10.0.0.2")
	assert.NotSame(t, a, b)
	assert.Same(t, a, rl.GetLimiter("10.0.0.1"))
}

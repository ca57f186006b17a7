package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gistworks/skim/api/middleware"
	"github.com/gistworks/skim/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func get(router *gin.Engine, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuth(t *testing.T) {
	t.Parallel()

	t.Run("no keys configured means open access", func(t *testing.T) {
		t.Parallel()
		router := newProtectedRouter(middleware.Auth(nil))
		assert.Equal(t, http.StatusOK, get(router, nil).Code)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		t.Parallel()
		router := newProtectedRouter(middleware.Auth([]string{"sk-valid"}))
		assert.Equal(t, http.StatusUnauthorized, get(router, nil).Code)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		t.Parallel()
		router := newProtectedRouter(middleware.Auth([]string{"sk-valid"}))
		rec := get(router, func(r *http.Request) {
			r.Header.Set("X-API-Key", "sk-wrong")
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("X-API-Key header accepted", func(t *testing.T) {
		t.Parallel()
		router := newProtectedRouter(middleware.Auth([]string{"sk-valid"}))
		rec := get(router, func(r *http.Request) {
			r.Header.Set("X-API-Key", "sk-valid")
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Bearer token accepted", func(t *testing.T) {
		t.Parallel()
		router := newProtectedRouter(middleware.Auth([]string{"sk-valid"}))
		rec := get(router, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer sk-valid")
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	router := newProtectedRouter(middleware.RateLimit(config.RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             2,
	}))

	assert.Equal(t, http.StatusOK, get(router, nil).Code)
	assert.Equal(t, http.StatusOK, get(router, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router, nil).Code)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	router := newProtectedRouter(middleware.RequestID())

	t.Run("generates an id when absent", func(t *testing.T) {
		t.Parallel()
		rec := get(router, nil)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("echoes a caller-supplied id", func(t *testing.T) {
		t.Parallel()
		rec := get(router, func(r *http.Request) {
			r.Header.Set(middleware.RequestIDHeader, "req-42")
		})
		assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))
	})
}

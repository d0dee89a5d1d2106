package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var fromCtx string
	r.GET("/", func(c *gin.Context) {
		fromCtx = domain.StringFromContext(c.Request.Context(), domain.KeyRequestID)
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, fromCtx)
}

func TestRequestIDReusesWellFormedHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "edge-1234abcd")
	assert.Equal(t, "edge-1234abcd", serve(r, req).Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "bad id\r\nx")
	assert.NotEqual(t, "bad id\r\nx", serve(r, req).Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(CORSConfig{AllowedOrigins: []string{"https://portfolio.dev/"}}))
	r.POST("/v1/contact", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/contact", nil)
		req.Header.Set("Origin", "https://portfolio.dev")
		w := serve(r, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://portfolio.dev", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/contact", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := serve(r, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("localhost only when enabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		assert.Empty(t, serve(r, req).Header().Get("Access-Control-Allow-Origin"))

		dev := gin.New()
		dev.Use(CORSMiddleware(CORSConfig{AllowLocalhost: true}))
		dev.POST("/v1/contact", func(c *gin.Context) { c.Status(http.StatusOK) })
		assert.Equal(t, "http://localhost:3000", serve(dev, req).Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAPIRateLimiter(t *testing.T) {
	limiter := NewAPIRateLimiter(RateLimitConfig{RPS: 0.001, Burst: 2})
	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	newReq := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		return req
	}

	assert.Equal(t, http.StatusOK, serve(r, newReq("192.0.2.1")).Code)
	assert.Equal(t, http.StatusOK, serve(r, newReq("192.0.2.1")).Code)

	w := serve(r, newReq("192.0.2.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve(r, newReq("192.0.2.2")).Code, "other clients keep their own bucket")
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(nil))
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperror.BadRequest("Invalid request body"))
	})
	r.GET("/raw", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation does not exist"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(nil))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(true))
	r.GET("/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/v1/swagger/index.html", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/v1/swagger/index.html", nil))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
}

func TestAPIRateLimiterFractionalLimitHeader(t *testing.T) {
	limiter := NewAPIRateLimiter(RateLimitConfig{RPS: 0.5, Burst: 1})
	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0.5", w.Header().Get("X-RateLimit-Limit"))
}

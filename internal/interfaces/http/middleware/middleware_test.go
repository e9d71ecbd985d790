package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())

	var seen string
	router.GET("/", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	performRequest(router, http.MethodGet, "/", nil)
	assert.NotEmpty(t, seen)
}

func TestRequestIDMiddleware_HonorsHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())

	var seen string
	router.GET("/", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		// The ID must also be visible through the request context for
		// the structured logger.
		fromCtx, _ := c.Request.Context().Value("request_id").(string)
		assert.Equal(t, seen, fromCtx)
		c.Status(http.StatusOK)
	})

	performRequest(router, http.MethodGet, "/", map[string]string{"X-Request-ID": "req-42"})
	assert.Equal(t, "req-42", seen)
}

func TestLoggerMiddleware_DoesNotPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(), LoggerMiddleware())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(router, http.MethodGet, "/ok?q=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsMiddleware_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := performRequest(router, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = performRequest(router, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

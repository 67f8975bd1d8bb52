package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/testutil"
	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

func readBodyHandler(c *gin.Context) {
	if _, err := io.ReadAll(c.Request.Body); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{Error: "Entity too large"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func TestSizeLimit(t *testing.T) {
	r := gin.New()
	r.POST("/upload", SizeLimit(16), readBodyHandler)

	tests := []struct {
		name    string
		body    string
		chunked bool
		status  int
	}{
		{"within limit", "small", false, http.StatusOK},
		{"declared too large", strings.Repeat("x", 32), false, http.StatusRequestEntityTooLarge},
		{"undeclared too large", strings.Repeat("x", 32), true, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(tt.body))
			if tt.chunked {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestSafeHeader(t *testing.T) {
	r := gin.New()
	r.Use(SafeHeader())
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/ping", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/fine", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/boom", http.MethodGet)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", resp["error"])

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/fine", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiterMiddleware(1))
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/ping", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/ping", http.MethodGet)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, resp["error"], "Too many requests")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_PerUser(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(utilities.UserKey, model.User{ID: c.GetHeader("X-User")})
	}, RateLimiterMiddleware(1))
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	request := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-User", userID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	// Same client address, different users.
	assert.Equal(t, http.StatusOK, request("user-1"))
	assert.Equal(t, http.StatusOK, request("user-2"))
	assert.Equal(t, http.StatusTooManyRequests, request("user-1"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiterMiddleware(0))
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	for i := 0; i < 5; i++ {
		rec, _ := testutil.MakeJSONRequest(nil, "", r, "/ping", http.MethodGet)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusTeapot, gin.H{"ok": true}) })

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/ping", http.MethodGet)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter *stubLimiter
		want    int
	}{
		{"allowed", &stubLimiter{allow: true}, http.StatusOK},
		{"rejected", &stubLimiter{allow: false}, http.StatusTooManyRequests},
		{"limiter failure fails open", &stubLimiter{err: errors.New("redis down")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RateLimit(tt.limiter, time.Minute))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.1.2.3:5555"
			w := serve(r, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if len(tt.limiter.keys) != 1 || tt.limiter.keys[0] != "10.1.2.3" {
				t.Errorf("limiter keys = %v", tt.limiter.keys)
			}
			if tt.want == http.StatusTooManyRequests {
				if w.Header().Get("Retry-After") != "60" {
					t.Errorf("Retry-After = %q", w.Header().Get("Retry-After"))
				}
				if !strings.Contains(w.Body.String(), "TOO_MANY_REQUESTS") {
					t.Errorf("body = %s", w.Body.String())
				}
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	r := gin.New()
	r.Use(RequireUser())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if w := serve(r, req); w.Code != http.StatusUnauthorized {
		t.Errorf("missing header: status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, "  ")
	if w := serve(r, req); w.Code != http.StatusUnauthorized {
		t.Errorf("blank header: status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, " user-1 ")
	w := serve(r, req)
	if w.Code != http.StatusOK || w.Body.String() != "user-1" {
		t.Errorf("status = %d, body = %q", w.Code, w.Body.String())
	}
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if w := serve(r, httptest.NewRequest(http.MethodGet, "/slow", nil)); w.Code != http.StatusGatewayTimeout {
		t.Errorf("slow: status = %d", w.Code)
	}
	if w := serve(r, httptest.NewRequest(http.MethodGet, "/fast", nil)); w.Code != http.StatusNoContent {
		t.Errorf("fast: status = %d", w.Code)
	}
}

func TestBodySizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(16))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))
	if w := serve(r, req); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Errorf("small body: status = %d", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "INTERNAL_ERROR") {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

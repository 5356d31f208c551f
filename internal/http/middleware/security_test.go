package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func securedRouter(t *testing.T, opt SecurityOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoadSession(testResolver(t)), SecurityHeaders(opt))
	r.GET("/api/v1/pages/landing", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"alias": ""}) })
	return r
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	r := securedRouter(t, SecurityOptions{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/pages/landing", nil))

	h := w.Header()
	for k, want := range map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "no-referrer",
		"Content-Security-Policy": apiCSP,
	} {
		if got := h.Get(k); got != want {
			t.Fatalf("%s=%q want %q", k, got, want)
		}
	}
	for _, k := range []string{"Permissions-Policy", "X-Permitted-Cross-Domain-Policies", "Cache-Control", "Vary", "Strict-Transport-Security"} {
		if got := h.Get(k); got != "" {
			t.Fatalf("%s should be unset, got %q", k, got)
		}
	}
}

func TestSecurityHeaders_PrivateWhenSignedIn(t *testing.T) {
	r := securedRouter(t, SecurityOptions{PrivateWhenSignedIn: true, EnablePolicy: true})

	for _, tc := range []struct {
		name  string
		token string
		cache string
	}{
		{"anonymous", "", ""},
		{"unknown token", "stale", ""},
		{"signed in", "good", "private, no-store"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/pages/landing", nil)
			if tc.token != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.token})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if got := w.Header().Get("Cache-Control"); got != tc.cache {
				t.Fatalf("Cache-Control=%q want %q", got, tc.cache)
			}
			// Shared caches must key on the credentials either way.
			if got := w.Header().Get("Vary"); got != "Cookie, Authorization" {
				t.Fatalf("Vary=%q", got)
			}
			if w.Header().Get("X-Permitted-Cross-Domain-Policies") != "none" {
				t.Fatalf("policy headers missing: %v", w.Header())
			}
		})
	}
}

func TestSecurityHeaders_VaryKeepsEarlierValues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Header("Vary", "Origin"); c.Next() })
	r.Use(SecurityHeaders(SecurityOptions{PrivateWhenSignedIn: true}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if got := w.Header().Values("Vary"); len(got) != 2 || got[0] != "Origin" {
		t.Fatalf("Vary=%v", got)
	}
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	for _, tc := range []struct {
		name   string
		maxAge time.Duration
		tls    bool
		proto  string
		want   string
	}{
		{"plain http", time.Hour, false, "", ""},
		{"direct tls", 24 * time.Hour, true, "", "max-age=86400; includeSubDomains; preload"},
		{"behind proxy", time.Hour, false, "HTTPS", "max-age=3600; includeSubDomains; preload"},
		{"default age", 0, true, "", "max-age=15552000; includeSubDomains; preload"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := securedRouter(t, SecurityOptions{EnableHSTS: true, HSTSMaxAge: tc.maxAge})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/pages/landing", nil)
			if tc.tls {
				req.TLS = &tls.ConnectionState{}
			}
			if tc.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tc.proto)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if got := w.Header().Get("Strict-Transport-Security"); got != tc.want {
				t.Fatalf("HSTS=%q want %q", got, tc.want)
			}
		})
	}
}

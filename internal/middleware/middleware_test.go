package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fantasy-books/internal/auth"
	"fantasy-books/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	handler := CORS("http://localhost:3000")(okHandler())

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/cart", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("normal request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	mw := AdminOnly(testSecret)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		tokenStr, err := auth.GenerateToken(testSecret, "someone", "customer", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token in cookie", func(t *testing.T) {
		tokenStr, err := auth.GenerateToken(testSecret, "admin", auth.RoleAdmin, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: tokenStr})
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "admin", claims.Subject)
			w.WriteHeader(http.StatusOK)
		})

		mw(next).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	send := func(h http.Handler, path, remote string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("strict path exhausts burst", func(t *testing.T) {
		l := NewRateLimiter("/admin/login")
		h := l.Middleware(okHandler())

		for i := 0; i < burstStrict; i++ {
			require.Equal(t, http.StatusOK, send(h, "/admin/login", "10.0.0.1:1234"))
		}
		assert.Equal(t, http.StatusTooManyRequests, send(h, "/admin/login", "10.0.0.1:1234"))

		// other clients and tiers have their own buckets
		assert.Equal(t, http.StatusOK, send(h, "/admin/login", "10.0.0.2:1234"))
		assert.Equal(t, http.StatusOK, send(h, "/cart", "10.0.0.1:1234"))
	})

	t.Run("device id takes precedence over ip on general routes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		assert.Equal(t, "ip:10.0.0.1", clientIdentity(req, tierGeneral))

		req.Header.Set(DeviceIDHeader, "tab-1")
		assert.Equal(t, "device:tab-1", clientIdentity(req, tierGeneral))
		assert.Equal(t, "ip:10.0.0.1", clientIdentity(req, tierStrict))
	})

	t.Run("rotating device ids does not reset the strict bucket", func(t *testing.T) {
		l := NewRateLimiter("/admin/login")
		h := l.Middleware(okHandler())
		rejected := metrics.RateLimited.WithLabelValues(tierStrict.name)
		before := testutil.ToFloat64(rejected)

		attempt := func(i int) int {
			req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
			req.RemoteAddr = "10.0.0.7:5555"
			req.Header.Set(DeviceIDHeader, fmt.Sprintf("device-%d", i))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			return w.Code
		}

		for i := 0; i < burstStrict; i++ {
			require.Equal(t, http.StatusOK, attempt(i))
		}
		for i := burstStrict; i < burstStrict+5; i++ {
			assert.Equal(t, http.StatusTooManyRequests, attempt(i))
		}
		assert.Equal(t, before+5, testutil.ToFloat64(rejected))
	})

	t.Run("sweep drops idle visitors", func(t *testing.T) {
		l := NewRateLimiter()
		now := time.Now()
		l.now = func() time.Time { return now }

		send(l.Middleware(okHandler()), "/books", "10.0.0.9:1")
		assert.Equal(t, 0, l.sweep())

		now = now.Add(visitorTTL + time.Second)
		assert.Equal(t, 1, l.sweep())
	})
}

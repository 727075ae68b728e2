package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestAuthMiddleware(t *testing.T) {
	withCookie := func(req *http.Request) *http.Request {
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "true"})
		return req
	}

	tests := []struct {
		name     string
		password string
		req      *http.Request
		want     int
	}{
		{"api is open", "secret", httptest.NewRequest(http.MethodGet, "/api/persons/", nil), http.StatusTeapot},
		{"logs redirect to login", "secret", httptest.NewRequest(http.MethodGet, "/logs", nil), http.StatusSeeOther},
		{"logs with cookie", "secret", withCookie(httptest.NewRequest(http.MethodGet, "/logs/clear", nil)), http.StatusTeapot},
		{"logs closed without password", "", withCookie(httptest.NewRequest(http.MethodGet, "/logs", nil)), http.StatusForbidden},
		{"similar prefix is open", "secret", httptest.NewRequest(http.MethodGet, "/logsearch", nil), http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			AuthMiddleware(tt.password)(okHandler).ServeHTTP(rec, tt.req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddleware_AjaxGetsUnauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/logs", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	rec := httptest.NewRecorder()

	AuthMiddleware("secret")(okHandler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(logger.New(&buf))(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/live-emotions/", nil))

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), id)
	assert.Contains(t, buf.String(), "status=418")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(okHandler, mark("first"), mark("second")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second"}, order)
}

package middleware

import (
	"net/http"
	"strings"
)

// AuthCookieName is set by the login handler once the admin password is accepted.
const AuthCookieName = "authenticated"

// ProtectedPrefixes lists the admin paths that need the auth cookie. Everything
// else, including the ingestion API, stays open.
var ProtectedPrefixes = []string{"/logs"}

// AuthMiddleware checks the auth cookie on admin paths. With an empty password
// the admin paths are closed entirely.
func AuthMiddleware(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isProtected(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if password == "" {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			cookie, err := r.Cookie(AuthCookieName)
			if err != nil || cookie.Value != "true" {
				// AJAX/API callers get a status, browsers get the login page.
				if r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
					r.Header.Get("Content-Type") == "application/json" {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isProtected(path string) bool {
	for _, prefix := range ProtectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

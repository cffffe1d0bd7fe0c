package middleware

import (
	"net/http"
)

// IsAdmin reports whether the Authorization header is exactly
// "Bearer <password>". The comparison is a plain string match. An unset
// password never matches.
func IsAdmin(r *http.Request, password string) bool {
	if password == "" {
		return false
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return false
	}

	return authHeader == "Bearer "+password
}

// BasicAuthMiddleware protects /metrics. With no credentials configured the
// endpoint is closed.
func BasicAuthMiddleware(user, pass string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()

			if user == "" || !ok || u != user || p != pass {
				w.Header().Set("WWW-Authenticate", `Basic realm="Metrics"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

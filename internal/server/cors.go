// internal/server/cors.go
package server

import "net/http"

// CORS adds cross-origin headers for allowed origins. A "*" entry allows any
// origin. Pre-flight requests are passed on so the chat handler answers them.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		allowed[o] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		w.Header().Add("Vary", "Origin")

		allowOrigin := ""
		if _, ok := allowed[origin]; ok && origin != "" {
			allowOrigin = origin
		} else if allowAll {
			allowOrigin = "*"
		}

		if allowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		}
		next.ServeHTTP(w, r)
	})
}

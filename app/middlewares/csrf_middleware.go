package middlewares

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// CSRFTokenHeader hands the per-request CSRF token back to API clients.
// A client reads the header off any admin GET and replays it in
// X-CSRF-Token on mutations. Must run inside csrf.Protect.
func CSRFTokenHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CSRF-Token", csrf.Token(r))
		next.ServeHTTP(w, r)
	})
}

package middlewares

import (
	"net/http"

	"github.com/amalbenali/glowshop/app/helpers"
	"github.com/amalbenali/glowshop/app/models"
)

// AdminAuthMiddleware rejects any request whose session user is not staff.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if helpers.GetUserIDFromContext(r.Context()) == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if helpers.GetRoleFromContext(r.Context()) != models.RoleAdmin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"

	"kudos/internal/domain/directory"
	"kudos/internal/transport/http/api"
)

// RequireRole resolves the caller against the directory and rejects the
// request unless the employee holds one of the given roles.
func RequireRole(dir *directory.Store, roles ...directory.Role) func(http.Handler) http.Handler {
	allowed := map[directory.Role]bool{}
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}

			employee, ok := dir.FindByEmail(identity.Email)
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if !allowed[employee.Role] {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient role", GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"kudos/internal/auth"
)

type ctxKey int

const ctxKeyIdentity ctxKey = 1

// Identity is what the external login system asserted about the caller. The
// email still has to resolve against the employee directory; a token with an
// unknown email yields empty query results, not an error.
type Identity struct {
	Email string
}

// Auth extracts the caller identity from a bearer token. Requests without a
// valid token pass through unauthenticated; role gates and handlers decide
// what anonymous callers may do.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyIdentity, Identity{Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return identity, ok
}

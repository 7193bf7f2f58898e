package middleware

import (
	"net/http"
	"strings"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/httputil"
)

// PrincipalMiddleware resolves an optional bearer token to the request
// principal. Requests without an Authorization header proceed as
// anonymous; plugin views decide themselves whether anonymous access is
// allowed. A malformed or expired token is rejected outright.
func PrincipalMiddleware(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				ctx := auth.ContextWithPrincipal(r.Context(), auth.Anonymous)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), claims.Principal())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

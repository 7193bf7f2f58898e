// Package auth resolves HTTP requests to a Principal and issues/validates
// the bearer tokens that carry it.
package auth

import "context"

// Principal is the authenticated viewer of a request. The zero value is
// the anonymous principal.
type Principal struct {
	ID        string
	Email     string
	Superuser bool
}

// Anonymous is the principal attached to unauthenticated requests.
// Plugin views without a permission string are publicly accessible.
var Anonymous = Principal{}

func (p Principal) IsAnonymous() bool { return p.ID == "" }

type contextKey string

const principalKey contextKey = "principal"

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the request principal, falling back to
// Anonymous when the auth middleware did not run.
func PrincipalFromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey).(Principal); ok {
		return p
	}
	return Anonymous
}

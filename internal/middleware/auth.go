package middleware

import (
	"context"
	"net/http"

	"github.com/quillpost/quillpost-go/internal/model"
)

type contextKey string

const identityKey contextKey = "identity"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// IdentityResolver turns a session token into the identity it binds.
type IdentityResolver interface {
	Identify(ctx context.Context, token string) model.Identity
}

// Session returns middleware that resolves the request's identity from the
// session cookie. Requests without a valid session continue as anonymous.
func Session(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := model.Anonymous
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				identity = resolver.Identify(r.Context(), cookie.Value)
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity returns a copy of ctx bound to identity.
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext extracts the request identity. Contexts that never
// passed through Session are anonymous.
func IdentityFromContext(ctx context.Context) model.Identity {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	if !ok {
		return model.Anonymous
	}
	return identity
}

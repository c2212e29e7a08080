package mw

import (
	"context"
	"net/http"

	"github.com/malware-d/bercos/internal/bank"
	"github.com/malware-d/bercos/internal/httpx"
	"github.com/malware-d/bercos/internal/identity"
)

type principalKey int

const key principalKey = 1

// Authenticate resolves the bearer credential to a live principal and puts
// it on the request context. Missing or stale credentials stop here; nothing
// past this middleware runs unauthenticated.
func Authenticate(resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred, ok := httpx.ExtractBearer(r.Header.Get("Authorization"))
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "access token is required")
				return
			}
			p, err := resolver.Resolve(r.Context(), cred)
			if err != nil {
				httpx.WriteErr(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func WithPrincipal(ctx context.Context, p bank.Principal) context.Context {
	return context.WithValue(ctx, key, p)
}

// PrincipalFrom returns the authenticated principal; ok is false when the
// middleware did not run (a programming error on protected routes).
func PrincipalFrom(ctx context.Context) (bank.Principal, bool) {
	p, ok := ctx.Value(key).(bank.Principal)
	return p, ok
}

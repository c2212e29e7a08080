// Package identity turns bearer credentials into live principals.
package identity

import (
	"context"

	"github.com/malware-d/bercos/internal/bank"
	"github.com/malware-d/bercos/internal/token"
)

// Resolver validates a credential and resolves it against the authoritative
// principal store. Privileges (status, approval level, limits) may have
// changed since the token was minted, so claims are only used to locate the
// record, never to populate it.
type Resolver struct {
	issuer *token.Issuer
	store  bank.Store
}

func NewResolver(issuer *token.Issuer, store bank.Store) *Resolver {
	return &Resolver{issuer: issuer, store: store}
}

func (r *Resolver) Resolve(ctx context.Context, credential string) (bank.Principal, error) {
	if credential == "" {
		return bank.Principal{}, bank.E(bank.KindAuthentication, "access token is required")
	}
	sub, err := r.issuer.Verify(credential)
	if err != nil {
		return bank.Principal{}, err
	}
	p, ok := r.store.PrincipalByID(ctx, sub)
	if !ok {
		return bank.Principal{}, bank.E(bank.KindAuthentication, "invalid or inactive user")
	}
	if p.Status != bank.PrincipalActive {
		return bank.Principal{}, bank.ErrInactive
	}
	return p, nil
}

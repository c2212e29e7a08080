package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/malware-d/bercos/internal/bank"
	"github.com/malware-d/bercos/internal/token"
)

func newTestResolver(t *testing.T) (*Resolver, *bank.MemoryStore, *token.Issuer) {
	t.Helper()
	store := bank.NewMemoryStore()
	store.AddPrincipal(bank.Principal{
		CustomerID: "MB001", Email: "an@example.com", Role: "customer",
		Status: bank.PrincipalActive, DailyLimit: 100_000_000,
	})
	store.AddPrincipal(bank.Principal{
		CustomerID: "MB003", Email: "cuong@example.com", Role: "customer",
		Status: bank.PrincipalSuspended,
	})
	issuer := token.NewIssuer([]byte("test-secret"), time.Hour)
	return NewResolver(issuer, store), store, issuer
}

func TestResolve(t *testing.T) {
	r, _, issuer := newTestResolver(t)
	raw, err := issuer.Issue(bank.Principal{CustomerID: "MB001"}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	p, err := r.Resolve(context.Background(), raw)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// the principal comes from the store, not from token claims
	if p.Email != "an@example.com" || p.DailyLimit != 100_000_000 {
		t.Fatalf("principal not refreshed from store: %+v", p)
	}
}

func TestResolveEmptyCredential(t *testing.T) {
	r, _, _ := newTestResolver(t)
	_, err := r.Resolve(context.Background(), "")
	if bank.KindOf(err) != bank.KindAuthentication {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestResolveSuspendedPrincipal(t *testing.T) {
	r, _, issuer := newTestResolver(t)
	raw, err := issuer.Issue(bank.Principal{CustomerID: "MB003"}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = r.Resolve(context.Background(), raw)
	if !errors.Is(err, bank.ErrInactive) {
		t.Fatalf("expected ErrInactive, got %v", err)
	}
}

// A valid token whose subject has been deleted must not authenticate: the
// store is authoritative, the token is only a locator.
func TestResolveUnknownSubject(t *testing.T) {
	r, _, issuer := newTestResolver(t)
	raw, err := issuer.Issue(bank.Principal{CustomerID: "GHOST"}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = r.Resolve(context.Background(), raw)
	if bank.KindOf(err) != bank.KindAuthentication {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

// Suspension after issuance takes effect on the next request.
func TestResolveSeesFreshStatus(t *testing.T) {
	r, store, issuer := newTestResolver(t)
	raw, err := issuer.Issue(bank.Principal{CustomerID: "MB001"}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := r.Resolve(context.Background(), raw); err != nil {
		t.Fatalf("resolve before suspension: %v", err)
	}

	p, _ := store.PrincipalByID(context.Background(), "MB001")
	p.Status = bank.PrincipalSuspended
	store.AddPrincipal(p)

	if _, err := r.Resolve(context.Background(), raw); !errors.Is(err, bank.ErrInactive) {
		t.Fatalf("expected ErrInactive after suspension, got %v", err)
	}
}

package token

import (
	"testing"
	"time"

	"github.com/malware-d/bercos/internal/bank"
)

var testPrincipal = bank.Principal{
	CustomerID:    "MB001",
	Email:         "nguyenvanan@gmail.com",
	Role:          "customer",
	Status:        bank.PrincipalActive,
	EmailVerified: true,
	DailyLimit:    100_000_000,
	BranchCode:    "MB_HN001",
}

func TestIssueAndVerify(t *testing.T) {
	i := NewIssuer([]byte("test-secret"), time.Hour)
	raw, err := i.Issue(testPrincipal, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sub, err := i.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "MB001" {
		t.Fatalf("subject = %q, want MB001", sub)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	i := NewIssuer([]byte("test-secret"), time.Hour)
	raw, err := i.Issue(testPrincipal, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = i.Verify(raw)
	if err == nil {
		t.Fatal("expired token accepted")
	}
	if bank.KindOf(err) != bank.KindAuthentication {
		t.Fatalf("kind = %v, want authentication", bank.KindOf(err))
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := NewIssuer([]byte("secret-a"), time.Hour)
	raw, err := issuer.Issue(testPrincipal, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other := NewIssuer([]byte("secret-b"), time.Hour)
	if _, err := other.Verify(raw); err == nil {
		t.Fatal("token signed with another key accepted")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	i := NewIssuer([]byte("test-secret"), time.Hour)
	for _, raw := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := i.Verify(raw); err == nil {
			t.Fatalf("garbage %q accepted", raw)
		}
	}
}

func TestDefaultTTL(t *testing.T) {
	i := NewIssuer([]byte("x"), 0)
	if i.TTL != 24*time.Hour {
		t.Fatalf("ttl = %v, want 24h", i.TTL)
	}
}

package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/malware-d/bercos/internal/bank"
)

func TestForAccountAttributes(t *testing.T) {
	b := Builder{PolicyVersion: "default"}
	p := bank.Principal{CustomerID: "MB001", Role: "customer"}
	acct := bank.Account{
		AccountNumber: "0123456789",
		AccountType:   "savings",
		CustomerID:    "MB001",
		Balance:       250_000_000,
		Frozen:        true,
		BranchCode:    "MB_HN001",
		Currency:      "VND",
	}

	req := b.ForAccount(p, ActionWithdraw, acct, map[string]any{"withdraw_amount": int64(5_000)})

	if req.ResourceKind != ResourceKindAccount || req.ResourceID != "0123456789" {
		t.Fatalf("resource = %s/%s", req.ResourceKind, req.ResourceID)
	}
	if req.PolicyVersion != "default" {
		t.Fatalf("policy version = %q", req.PolicyVersion)
	}
	if req.Attributes["balance"] != int64(250_000_000) {
		t.Fatalf("balance attr = %v", req.Attributes["balance"])
	}
	if req.Attributes["frozen"] != true {
		t.Fatalf("frozen attr = %v", req.Attributes["frozen"])
	}
	if req.Attributes["withdraw_amount"] != int64(5_000) {
		t.Fatalf("transient attr missing: %v", req.Attributes)
	}
}

func TestForAccountDefaultsForPartialState(t *testing.T) {
	b := Builder{}
	req := b.ForAccount(bank.Principal{}, ActionDeposit, bank.Account{}, nil)
	if req.ResourceID != NewResourceID {
		t.Fatalf("empty account number should map to sentinel, got %q", req.ResourceID)
	}
	if req.Attributes["frozen"] != false {
		t.Fatalf("frozen should default to false, got %v", req.Attributes["frozen"])
	}
	if req.Attributes["balance"] != int64(0) {
		t.Fatalf("balance should default to 0, got %v", req.Attributes["balance"])
	}
}

func TestForNewAccountUsesSentinel(t *testing.T) {
	b := Builder{}
	acct := bank.Account{AccountNumber: "9999999999", CustomerID: "MB002", Balance: 500}
	req := b.ForNewAccount(bank.Principal{CustomerID: "EMP001"}, acct)
	if req.Action != ActionCreateAccount {
		t.Fatalf("action = %q", req.Action)
	}
	if req.ResourceID != NewResourceID {
		t.Fatalf("create must evaluate the sentinel id, got %q", req.ResourceID)
	}
	if req.Attributes["account_number"] != "9999999999" {
		t.Fatal("candidate attributes should still carry the generated number")
	}
}

func TestForAdmin(t *testing.T) {
	b := Builder{PolicyVersion: "default"}
	req := b.ForAdmin(bank.Principal{CustomerID: "MGR001", Role: "manager"}, ActionViewAdmin)
	if req.ResourceID != NewResourceID || req.ResourceKind != ResourceKindAccount {
		t.Fatalf("resource = %s/%s", req.ResourceKind, req.ResourceID)
	}
	if req.Attributes["frozen"] != false || req.Attributes["balance"] != int64(0) {
		t.Fatalf("admin attrs: %v", req.Attributes)
	}
}

func TestMockDeniesWithReason(t *testing.T) {
	m := &Mock{}
	d, err := m.Check(context.Background(), Request{Action: ActionDeposit})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if d.Allowed || d.Reason == "" {
		t.Fatalf("decision: %+v", d)
	}
	if len(m.Requests()) != 1 {
		t.Fatal("request not recorded")
	}
}

func TestMockErrIsPDPUnavailable(t *testing.T) {
	m := &Mock{Err: errors.New("connection refused")}
	_, err := m.Check(context.Background(), Request{})
	if bank.KindOf(err) != bank.KindPDPUnavailable {
		t.Fatalf("expected pdp_unavailable, got %v", err)
	}
}

package authz

import (
	"github.com/malware-d/bercos/internal/bank"
)

// Action names evaluated by the account policy. The transfer kind is derived
// server-side from a destination lookup, never taken from the caller alone.
const (
	ActionViewAdmin        = "view:admin"
	ActionViewBalance      = "view:balance"
	ActionViewStatement    = "view:statement"
	ActionCreateAccount    = "create:account"
	ActionDeposit          = "deposit"
	ActionWithdraw         = "withdraw"
	ActionTransferInternal = "transfer:internal"
	ActionTransferExternal = "transfer:external"
	ActionFreeze           = "freeze"
	ActionUnfreeze         = "unfreeze"
)

const (
	// ResourceKindAccount is the policy resource kind for ledger accounts.
	ResourceKindAccount = "account"
	// NewResourceID is the sentinel id evaluated when the resource does not
	// exist yet (account creation).
	NewResourceID = "new"
)

// Builder assembles decision-ready requests from trusted resource state plus
// per-call transient attributes. PolicyVersion pins the policy revision the
// PDP evaluates against.
type Builder struct {
	PolicyVersion string
}

// ForAccount builds a Request for an action on an existing account. extra
// carries the operation's transient quantities (deposit_amount,
// withdraw_amount, transfer_amount) and is layered over the account snapshot;
// missing optional fields default (frozen=false, balance=0) so partial state
// never trips policy evaluation.
func (b Builder) ForAccount(p bank.Principal, action string, acct bank.Account, extra map[string]any) Request {
	attrs := map[string]any{
		"account_number": acct.AccountNumber,
		"account_type":   acct.AccountType,
		"customer_id":    acct.CustomerID,
		"balance":        acct.Balance,
		"frozen":         acct.Frozen,
		"branch_code":    acct.BranchCode,
		"currency":       acct.Currency,
	}
	for k, v := range extra {
		attrs[k] = v
	}
	id := acct.AccountNumber
	if id == "" {
		id = NewResourceID
	}
	return Request{
		Principal:     p,
		Action:        action,
		ResourceKind:  ResourceKindAccount,
		ResourceID:    id,
		Attributes:    attrs,
		PolicyVersion: b.PolicyVersion,
	}
}

// ForNewAccount builds a Request for account creation; the resource does not
// exist yet so the id is the "new" sentinel.
func (b Builder) ForNewAccount(p bank.Principal, acct bank.Account) Request {
	req := b.ForAccount(p, ActionCreateAccount, acct, nil)
	req.ResourceID = NewResourceID
	return req
}

// ForAdmin builds a Request for admin-scoped views that are not tied to a
// single account.
func (b Builder) ForAdmin(p bank.Principal, action string) Request {
	return Request{
		Principal:     p,
		Action:        action,
		ResourceKind:  ResourceKindAccount,
		ResourceID:    NewResourceID,
		Attributes:    map[string]any{"balance": int64(0), "frozen": false},
		PolicyVersion: b.PolicyVersion,
	}
}

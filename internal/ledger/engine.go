// Package ledger implements the transaction engine. Every mutating operation
// runs the same pipeline: authorize against the PDP with no locks held,
// acquire the per-account locks, re-validate preconditions under the lock,
// mutate, and append the transaction record in the same critical section.
// A Deny or an unreachable PDP leaves the ledger untouched.
package ledger

import (
	"context"
	"time"

	"github.com/malware-d/bercos/internal/audit"
	"github.com/malware-d/bercos/internal/authz"
	"github.com/malware-d/bercos/internal/bank"
)

type Engine struct {
	store   bank.Store
	pdp     authz.Authorizer
	builder authz.Builder
	audit   *audit.Log
	now     func() time.Time
}

func NewEngine(store bank.Store, pdp authz.Authorizer, builder authz.Builder, auditLog *audit.Log) *Engine {
	return &Engine{
		store:   store,
		pdp:     pdp,
		builder: builder,
		audit:   auditLog,
		now:     time.Now,
	}
}

// Result is the caller-facing outcome of a committed mutation. NewBalance is
// always read from post-mutation state inside the critical section.
type Result struct {
	Transaction bank.Transaction `json:"transaction"`
	NewBalance  int64            `json:"new_balance"`
}

// authorize obtains a fresh decision and records it. The error already
// carries the right kind: PDPUnavailable for transport failures,
// Authorization for a logical deny. Decisions are never reused.
func (e *Engine) authorize(ctx context.Context, req authz.Request) error {
	d, err := e.pdp.Check(ctx, req)
	if err != nil {
		e.audit.Decision(req.Principal.CustomerID, req.Action, req.ResourceID, false, "pdp_unavailable")
		if bank.KindOf(err) == bank.KindPDPUnavailable {
			return err
		}
		return bank.Wrap(bank.KindPDPUnavailable, "policy decision point unreachable", err)
	}
	e.audit.Decision(req.Principal.CustomerID, req.Action, req.ResourceID, d.Allowed, d.Reason)
	if !d.Allowed {
		if d.Reason != "" {
			return bank.Errorf(bank.KindAuthorization, "not authorized to perform this action: %s", d.Reason)
		}
		return bank.E(bank.KindAuthorization, "not authorized to perform this action")
	}
	return nil
}

// Deposit credits amount to the account. Source is the cash sentinel.
func (e *Engine) Deposit(ctx context.Context, p bank.Principal, accountNumber string, amount int64, description string) (*Result, error) {
	if amount <= 0 {
		return nil, bank.ErrBadAmount
	}
	acct, ok := e.store.Account(ctx, accountNumber)
	if !ok {
		return nil, bank.ErrNotFound
	}

	req := e.builder.ForAccount(p, authz.ActionDeposit, acct, map[string]any{
		"deposit_amount": amount,
	})
	if err := e.authorize(ctx, req); err != nil {
		return nil, err
	}

	var newBalance int64
	txn, err := e.store.Mutate(ctx, []string{accountNumber}, func(accts map[string]*bank.Account) (*bank.Transaction, error) {
		a, ok := accts[accountNumber]
		if !ok {
			return nil, bank.ErrNotFound
		}
		if a.Frozen {
			return nil, bank.ErrFrozen
		}
		a.Balance += amount
		newBalance = a.Balance
		return &bank.Transaction{
			TransactionID: bank.NewTransactionID(),
			FromAccount:   bank.CashAccount,
			ToAccount:     accountNumber,
			Amount:        amount,
			Type:          bank.TxDeposit,
			Status:        bank.TxCompleted,
			Timestamp:     e.now().UTC(),
			Description:   description,
			ProcessedBy:   p.Email,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	e.audit.Mutation(p.CustomerID, string(bank.TxDeposit), []string{accountNumber}, txn.TransactionID)
	return &Result{Transaction: *txn, NewBalance: newBalance}, nil
}

// Withdraw debits amount from the account. The sufficient-balance rule is
// policy-enforced but re-checked here under the lock: the balance may have
// changed between decision and commit.
func (e *Engine) Withdraw(ctx context.Context, p bank.Principal, accountNumber string, amount int64, description string) (*Result, error) {
	if amount <= 0 {
		return nil, bank.ErrBadAmount
	}
	acct, ok := e.store.Account(ctx, accountNumber)
	if !ok {
		return nil, bank.ErrNotFound
	}

	req := e.builder.ForAccount(p, authz.ActionWithdraw, acct, map[string]any{
		"withdraw_amount": amount,
	})
	if err := e.authorize(ctx, req); err != nil {
		return nil, err
	}

	var newBalance int64
	txn, err := e.store.Mutate(ctx, []string{accountNumber}, func(accts map[string]*bank.Account) (*bank.Transaction, error) {
		a, ok := accts[accountNumber]
		if !ok {
			return nil, bank.ErrNotFound
		}
		if a.Frozen {
			return nil, bank.ErrFrozen
		}
		if a.Balance < amount {
			return nil, bank.ErrInsufficient
		}
		a.Balance -= amount
		newBalance = a.Balance
		return &bank.Transaction{
			TransactionID: bank.NewTransactionID(),
			FromAccount:   accountNumber,
			ToAccount:     bank.CashAccount,
			Amount:        amount,
			Type:          bank.TxWithdrawal,
			Status:        bank.TxCompleted,
			Timestamp:     e.now().UTC(),
			Description:   description,
			ProcessedBy:   p.Email,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	e.audit.Mutation(p.CustomerID, string(bank.TxWithdrawal), []string{accountNumber}, txn.TransactionID)
	return &Result{Transaction: *txn, NewBalance: newBalance}, nil
}

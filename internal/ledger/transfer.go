package ledger

import (
	"context"

	"github.com/malware-d/bercos/internal/authz"
	"github.com/malware-d/bercos/internal/bank"
)

type TransferKind string

const (
	TransferInternal TransferKind = "internal"
	TransferExternal TransferKind = "external"
)

// Transfer moves amount from one account to another. The kind is derived
// from a destination lookup: a destination held in this ledger makes the
// transfer internal, anything else external. The caller's declared kind is a
// hint that must agree with the derived kind; a mismatch fails before any
// policy evaluation, so the evaluated action name is always server-chosen.
// An omitted hint defaults to internal, so a typo'd local destination fails
// instead of leaking out as an external debit.
func (e *Engine) Transfer(ctx context.Context, p bank.Principal, from, to string, amount int64, description string, hint TransferKind) (*Result, error) {
	if amount <= 0 {
		return nil, bank.ErrBadAmount
	}
	if to == "" {
		return nil, bank.ErrNoDestination
	}
	if to == from {
		return nil, bank.E(bank.KindValidation, "cannot transfer to the same account")
	}
	if hint == "" {
		hint = TransferInternal
	}
	source, ok := e.store.Account(ctx, from)
	if !ok {
		return nil, bank.ErrNotFound
	}

	_, destLocal := e.store.Account(ctx, to)
	kind := TransferExternal
	if destLocal {
		kind = TransferInternal
	}
	if hint != kind {
		if kind == TransferExternal {
			return nil, bank.E(bank.KindValidation, "destination account doesn't exist")
		}
		return nil, bank.E(bank.KindValidation, "destination account is held here; transfer_type external rejected")
	}

	action := authz.ActionTransferInternal
	if kind == TransferExternal {
		action = authz.ActionTransferExternal
	}
	req := e.builder.ForAccount(p, action, source, map[string]any{
		"transfer_amount": amount,
		"to_account":      to,
	})
	if err := e.authorize(ctx, req); err != nil {
		return nil, err
	}

	if kind == TransferInternal {
		return e.transferInternal(ctx, p, from, to, amount, description)
	}
	return e.transferExternal(ctx, p, from, to, amount, description)
}

// transferInternal applies both legs as one atomic unit: the store locks
// both accounts (ordered) and either leg failing aborts the whole operation.
func (e *Engine) transferInternal(ctx context.Context, p bank.Principal, from, to string, amount int64, description string) (*Result, error) {
	var newBalance int64
	txn, err := e.store.Mutate(ctx, []string{from, to}, func(accts map[string]*bank.Account) (*bank.Transaction, error) {
		src, ok := accts[from]
		if !ok {
			return nil, bank.ErrNotFound
		}
		dst, ok := accts[to]
		if !ok {
			// Destination vanished between lookup and lock. Abort before
			// touching the source.
			return nil, bank.ErrNotFound
		}
		if src.Frozen {
			return nil, bank.ErrFrozen
		}
		if src.Balance < amount {
			return nil, bank.ErrInsufficient
		}
		src.Balance -= amount
		dst.Balance += amount
		newBalance = src.Balance
		return &bank.Transaction{
			TransactionID: bank.NewTransactionID(),
			FromAccount:   from,
			ToAccount:     to,
			Amount:        amount,
			Type:          bank.TxInternalTransfer,
			Status:        bank.TxCompleted,
			Timestamp:     e.now().UTC(),
			Description:   description,
			ProcessedBy:   p.Email,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	e.audit.Mutation(p.CustomerID, string(bank.TxInternalTransfer), []string{from, to}, txn.TransactionID)
	return &Result{Transaction: *txn, NewBalance: newBalance}, nil
}

// transferExternal debits the source only; settlement happens outside this
// system, so the transaction stays pending.
func (e *Engine) transferExternal(ctx context.Context, p bank.Principal, from, to string, amount int64, description string) (*Result, error) {
	var newBalance int64
	txn, err := e.store.Mutate(ctx, []string{from}, func(accts map[string]*bank.Account) (*bank.Transaction, error) {
		src, ok := accts[from]
		if !ok {
			return nil, bank.ErrNotFound
		}
		if src.Frozen {
			return nil, bank.ErrFrozen
		}
		if src.Balance < amount {
			return nil, bank.ErrInsufficient
		}
		src.Balance -= amount
		newBalance = src.Balance
		return &bank.Transaction{
			TransactionID: bank.NewTransactionID(),
			FromAccount:   from,
			ToAccount:     to,
			Amount:        amount,
			Type:          bank.TxExternalTransfer,
			Status:        bank.TxPending,
			Timestamp:     e.now().UTC(),
			Description:   description,
			ProcessedBy:   p.Email,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	e.audit.Mutation(p.CustomerID, string(bank.TxExternalTransfer), []string{from}, txn.TransactionID)
	return &Result{Transaction: *txn, NewBalance: newBalance}, nil
}

package ledger

import (
	"context"

	"github.com/malware-d/bercos/internal/authz"
	"github.com/malware-d/bercos/internal/bank"
)

// FreezeResult reports the flag change; no amounts are involved.
type FreezeResult struct {
	AccountNumber string `json:"account_number"`
	Frozen        bool   `json:"frozen"`
	Reason        string `json:"reason"`
	ChangedBy     string `json:"changed_by"`
}

// Freeze sets the frozen flag, recording actor, reason and timestamp. A
// frozen account rejects every mutating action until an authorized unfreeze.
func (e *Engine) Freeze(ctx context.Context, p bank.Principal, accountNumber, reason string) (*FreezeResult, error) {
	return e.setFrozen(ctx, p, accountNumber, reason, true)
}

// Unfreeze clears the frozen flag.
func (e *Engine) Unfreeze(ctx context.Context, p bank.Principal, accountNumber, reason string) (*FreezeResult, error) {
	return e.setFrozen(ctx, p, accountNumber, reason, false)
}

func (e *Engine) setFrozen(ctx context.Context, p bank.Principal, accountNumber, reason string, frozen bool) (*FreezeResult, error) {
	acct, ok := e.store.Account(ctx, accountNumber)
	if !ok {
		return nil, bank.ErrNotFound
	}

	action := authz.ActionFreeze
	if !frozen {
		action = authz.ActionUnfreeze
	}
	if err := e.authorize(ctx, e.builder.ForAccount(p, action, acct, nil)); err != nil {
		return nil, err
	}

	_, err := e.store.Mutate(ctx, []string{accountNumber}, func(accts map[string]*bank.Account) (*bank.Transaction, error) {
		a, ok := accts[accountNumber]
		if !ok {
			return nil, bank.ErrNotFound
		}
		now := e.now().UTC()
		a.Frozen = frozen
		if frozen {
			a.FreezeReason = reason
			a.FrozenBy = p.Email
			a.FrozenAt = now
		} else {
			// the original freeze reason stays on record
			a.UnfreezeReason = reason
			a.UnfreezeBy = p.Email
			a.UnfrozenAt = now
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	e.audit.Mutation(p.CustomerID, action, []string{accountNumber}, "")
	return &FreezeResult{
		AccountNumber: accountNumber,
		Frozen:        frozen,
		Reason:        reason,
		ChangedBy:     p.Email,
	}, nil
}

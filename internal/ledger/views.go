package ledger

import (
	"context"

	"github.com/malware-d/bercos/internal/authz"
	"github.com/malware-d/bercos/internal/bank"
)

// Account returns the full account record after a view:balance decision.
// View actions are governed by role eligibility alone; the frozen flag does
// not block them.
func (e *Engine) Account(ctx context.Context, p bank.Principal, accountNumber string) (bank.Account, error) {
	acct, ok := e.store.Account(ctx, accountNumber)
	if !ok {
		return bank.Account{}, bank.ErrNotFound
	}
	if err := e.authorize(ctx, e.builder.ForAccount(p, authz.ActionViewBalance, acct, nil)); err != nil {
		return bank.Account{}, err
	}
	return acct, nil
}

// BalanceInfo is the slim balance view.
type BalanceInfo struct {
	AccountNumber string `json:"account_number"`
	Balance       int64  `json:"balance"`
	Currency      string `json:"currency"`
	Frozen        bool   `json:"frozen"`
}

func (e *Engine) Balance(ctx context.Context, p bank.Principal, accountNumber string) (*BalanceInfo, error) {
	acct, err := e.Account(ctx, p, accountNumber)
	if err != nil {
		return nil, err
	}
	return &BalanceInfo{
		AccountNumber: acct.AccountNumber,
		Balance:       acct.Balance,
		Currency:      acct.Currency,
		Frozen:        acct.Frozen,
	}, nil
}

// Statement lists the transactions touching one account.
func (e *Engine) Statement(ctx context.Context, p bank.Principal, accountNumber string) ([]bank.Transaction, error) {
	acct, ok := e.store.Account(ctx, accountNumber)
	if !ok {
		return nil, bank.ErrNotFound
	}
	if err := e.authorize(ctx, e.builder.ForAccount(p, authz.ActionViewStatement, acct, nil)); err != nil {
		return nil, err
	}
	return e.store.TransactionsByAccount(ctx, accountNumber), nil
}

// ListAccounts is the admin-scoped catalog view.
func (e *Engine) ListAccounts(ctx context.Context, p bank.Principal) ([]bank.Account, error) {
	if err := e.authorize(ctx, e.builder.ForAdmin(p, authz.ActionViewAdmin)); err != nil {
		return nil, err
	}
	return e.store.Accounts(ctx), nil
}

// AllTransactions is the admin-scoped transaction journal.
func (e *Engine) AllTransactions(ctx context.Context, p bank.Principal) ([]bank.Transaction, error) {
	if err := e.authorize(ctx, e.builder.ForAdmin(p, authz.ActionViewAdmin)); err != nil {
		return nil, err
	}
	return e.store.Transactions(ctx), nil
}

// CreateAccount opens an account for a customer. The policy evaluates the
// candidate record under the "new" resource id sentinel; the branch code
// comes from the creating principal.
func (e *Engine) CreateAccount(ctx context.Context, p bank.Principal, customerID, accountType string, initialDeposit int64) (bank.Account, error) {
	if initialDeposit < 0 {
		return bank.Account{}, bank.ErrBadAmount
	}
	if customerID == "" {
		return bank.Account{}, bank.E(bank.KindValidation, "customer_id is required")
	}
	number, err := bank.NewAccountNumber()
	if err != nil {
		return bank.Account{}, err
	}
	candidate := bank.Account{
		AccountNumber: number,
		AccountType:   accountType,
		CustomerID:    customerID,
		Balance:       initialDeposit,
		BranchCode:    p.BranchCode,
		OpenedDate:    e.now().UTC().Format("2006-01-02"),
		Currency:      "VND",
	}

	if err := e.authorize(ctx, e.builder.ForNewAccount(p, candidate)); err != nil {
		return bank.Account{}, err
	}

	created, err := e.store.CreateAccount(ctx, candidate)
	if err != nil {
		return bank.Account{}, err
	}
	e.audit.Mutation(p.CustomerID, authz.ActionCreateAccount, []string{created.AccountNumber}, "")
	return created, nil
}

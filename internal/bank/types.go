package bank

import (
	"context"
	"time"
)

type PrincipalStatus string

const (
	PrincipalActive    PrincipalStatus = "active"
	PrincipalSuspended PrincipalStatus = "suspended"
)

// Principal is the authenticated actor. Attributes are always refreshed from
// the store at resolution time; token claims alone are never trusted.
type Principal struct {
	CustomerID    string          `json:"customer_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	PasswordHash  string          `json:"-"`
	Role          string          `json:"role"`
	Status        PrincipalStatus `json:"status"`
	EmailVerified bool            `json:"email_verified"`
	SMSVerified   bool            `json:"sms_verified"`
	DailyLimit    int64           `json:"daily_limit"`
	BranchCode    string          `json:"branch_code,omitempty"`
	Department    string          `json:"department,omitempty"`
	ApprovalLevel int             `json:"approval_level"`
	ReadOnly      bool            `json:"read_only"`
}

// Account balances are integer minor units (VND has no subunit, so 1 == 1 VND).
type Account struct {
	AccountNumber string    `json:"account_number"`
	AccountType   string    `json:"account_type"`
	CustomerID    string    `json:"customer_id"`
	Balance       int64     `json:"balance"`
	Frozen        bool      `json:"frozen"`
	BranchCode    string    `json:"branch_code"`
	OpenedDate    string    `json:"opened_date"`
	Currency      string    `json:"currency"`
	FreezeReason   string    `json:"freeze_reason,omitempty"`
	FrozenBy       string    `json:"frozen_by,omitempty"`
	FrozenAt       time.Time `json:"frozen_at,omitempty"`
	UnfreezeReason string    `json:"unfreeze_reason,omitempty"`
	UnfreezeBy     string    `json:"unfrozen_by,omitempty"`
	UnfrozenAt     time.Time `json:"unfrozen_at,omitempty"`
}

type TxStatus string

const (
	TxCompleted TxStatus = "completed"
	TxPending   TxStatus = "pending"
)

type TxType string

const (
	TxDeposit          TxType = "deposit"
	TxWithdrawal       TxType = "withdrawal"
	TxInternalTransfer TxType = "internal_transfer"
	TxExternalTransfer TxType = "external_transfer"
)

// CashAccount is the sentinel counterparty for deposits and withdrawals.
const CashAccount = "cash"

// Transaction is immutable once appended.
type Transaction struct {
	TransactionID string    `json:"transaction_id"`
	FromAccount   string    `json:"from_account"`
	ToAccount     string    `json:"to_account"`
	Amount        int64     `json:"amount"`
	Type          TxType    `json:"transaction_type"`
	Status        TxStatus  `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Description   string    `json:"description"`
	ProcessedBy   string    `json:"processed_by"`
}

// Store is the atomic-operation contract the ledger engine relies on.
// Reads return snapshots; Mutate runs fn with exclusive ownership of the
// named accounts and appends fn's transaction in the same critical section.
type Store interface {
	PrincipalByID(ctx context.Context, customerID string) (Principal, bool)
	PrincipalByEmail(ctx context.Context, email string) (Principal, bool)

	Account(ctx context.Context, number string) (Account, bool)
	Accounts(ctx context.Context) []Account
	CreateAccount(ctx context.Context, acct Account) (Account, error)

	// Mutate acquires the per-account locks for ids (ordered internally to
	// avoid deadlock), passes the live records to fn, and commits fn's
	// transaction atomically with the mutation. A nil transaction commits
	// the account changes alone (freeze/unfreeze).
	Mutate(ctx context.Context, ids []string, fn func(accts map[string]*Account) (*Transaction, error)) (*Transaction, error)

	Transactions(ctx context.Context) []Transaction
	TransactionsByAccount(ctx context.Context, number string) []Transaction
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/malware-d/bercos/internal/bank"
	"github.com/malware-d/bercos/internal/httpx"
	"github.com/malware-d/bercos/internal/ledger"
	"github.com/malware-d/bercos/internal/mw"
)

type AccountHandler struct {
	Engine *ledger.Engine
}

func NewAccountHandler(engine *ledger.Engine) *AccountHandler {
	return &AccountHandler{Engine: engine}
}

// accountView hides balances from read-only principals (auditors) on the
// admin listing.
type accountView struct {
	bank.Account
	Balance any `json:"balance"`
}

func redact(acc bank.Account, readOnly bool) accountView {
	v := accountView{Account: acc, Balance: acc.Balance}
	if readOnly {
		v.Balance = "***"
	}
	return v
}

// List handles GET /accounts (admin-scoped).
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	accounts, err := h.Engine.ListAccounts(r.Context(), p)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	out := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, redact(a, p.ReadOnly))
	}
	httpx.WriteData(w, http.StatusOK, "All accounts fetched successfully", out)
}

// Get handles GET /accounts/{accountNumber}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	acct, err := h.Engine.Account(r.Context(), p, chi.URLParam(r, "accountNumber"))
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Account details fetched successfully", acct)
}

// Balance handles GET /accounts/{accountNumber}/balance.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	info, err := h.Engine.Balance(r.Context(), p, chi.URLParam(r, "accountNumber"))
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Account balance fetched successfully", info)
}

type createAccountRequest struct {
	CustomerID     string `json:"customer_id"`
	AccountType    string `json:"account_type"`
	InitialDeposit int64  `json:"initial_deposit"`
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	acct, err := h.Engine.CreateAccount(r.Context(), p, req.CustomerID, req.AccountType, req.InitialDeposit)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, "Account created successfully", acct)
}

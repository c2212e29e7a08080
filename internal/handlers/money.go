package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/malware-d/bercos/internal/httpx"
	"github.com/malware-d/bercos/internal/ledger"
	"github.com/malware-d/bercos/internal/mw"
)

type amountRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// Deposit handles POST /accounts/{accountNumber}/deposit.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Description == "" {
		req.Description = "Deposit"
	}
	res, err := h.Engine.Deposit(r.Context(), p, chi.URLParam(r, "accountNumber"), req.Amount, req.Description)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Deposit completed successfully", res)
}

// Withdraw handles POST /accounts/{accountNumber}/withdraw.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Description == "" {
		req.Description = "Withdrawal"
	}
	res, err := h.Engine.Withdraw(r.Context(), p, chi.URLParam(r, "accountNumber"), req.Amount, req.Description)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Withdrawal completed successfully", res)
}

type transferRequest struct {
	ToAccount    string `json:"to_account"`
	Amount       int64  `json:"amount"`
	Description  string `json:"description"`
	TransferType string `json:"transfer_type"`
}

// Transfer handles POST /accounts/{accountNumber}/transfer. transfer_type is
// a hint; the engine derives the real kind from a destination lookup and
// treats an omitted hint as internal, so external transfers must say so.
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Description == "" {
		req.Description = "Transfer"
	}
	res, err := h.Engine.Transfer(r.Context(), p, chi.URLParam(r, "accountNumber"),
		req.ToAccount, req.Amount, req.Description, ledger.TransferKind(req.TransferType))
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	msg := "Internal transfer completed successfully"
	if res.Transaction.Status == "pending" {
		msg = "External transfer initiated successfully"
	}
	httpx.WriteData(w, http.StatusOK, msg, res)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/malware-d/bercos/internal/httpx"
	"github.com/malware-d/bercos/internal/mw"
)

// Statement handles GET /accounts/{accountNumber}/transactions.
func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	txns, err := h.Engine.Statement(r.Context(), p, chi.URLParam(r, "accountNumber"))
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Transaction history fetched successfully", txns)
}

// AllTransactions handles GET /accounts/admin/transactions (admin-scoped).
func (h *AccountHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	txns, err := h.Engine.AllTransactions(r.Context(), p)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "All transactions fetched successfully", txns)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/malware-d/bercos/internal/httpx"
	"github.com/malware-d/bercos/internal/mw"
)

type freezeRequest struct {
	Reason string `json:"reason"`
}

// Freeze handles POST /accounts/{accountNumber}/freeze.
func (h *AccountHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	var req freezeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Reason == "" {
		req.Reason = "Security freeze"
	}
	res, err := h.Engine.Freeze(r.Context(), p, chi.URLParam(r, "accountNumber"), req.Reason)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Account frozen successfully", res)
}

// Unfreeze handles POST /accounts/{accountNumber}/unfreeze.
func (h *AccountHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	p, _ := mw.PrincipalFrom(r.Context())
	var req freezeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Reason == "" {
		req.Reason = "Unfreeze approved"
	}
	res, err := h.Engine.Unfreeze(r.Context(), p, chi.URLParam(r, "accountNumber"), req.Reason)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Account unfrozen successfully", res)
}

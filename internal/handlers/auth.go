package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/malware-d/bercos/internal/bank"
	"github.com/malware-d/bercos/internal/httpx"
	"github.com/malware-d/bercos/internal/token"
)

type AuthHandler struct {
	Store  bank.Store
	Issuer *token.Issuer
}

func NewAuthHandler(store bank.Store, issuer *token.Issuer) *AuthHandler {
	return &AuthHandler{Store: store, Issuer: issuer}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  bank.Principal `json:"user"`
}

// Login issues a bearer token. Credential failures are indistinguishable to
// the caller; only active principals may log in.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	p, ok := h.Store.PrincipalByEmail(r.Context(), req.Email)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if p.Status != bank.PrincipalActive {
		httpx.WriteError(w, http.StatusUnauthorized, "account is not active")
		return
	}

	tok, err := h.Issuer.Issue(p, time.Now())
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Login successful", loginResponse{Token: tok, User: p})
}

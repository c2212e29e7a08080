package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/malware-d/bercos/internal/audit"
	"github.com/malware-d/bercos/internal/authz"
	"github.com/malware-d/bercos/internal/bank"
	"github.com/malware-d/bercos/internal/httpx"
	"github.com/malware-d/bercos/internal/identity"
	"github.com/malware-d/bercos/internal/ledger"
	"github.com/malware-d/bercos/internal/token"
)

func newTestRouter(t *testing.T, pdp authz.Authorizer) http.Handler {
	t.Helper()
	store := bank.NewMemoryStore()
	if err := bank.Seed(store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	log := audit.New(&audit.MemorySink{}, 1024)
	t.Cleanup(log.Close)

	issuer := token.NewIssuer([]byte("test-secret"), time.Hour)
	engine := ledger.NewEngine(store, pdp, authz.Builder{PolicyVersion: "default"}, log)

	return BuildRouter(Deps{
		Store:    store,
		Engine:   engine,
		Issuer:   issuer,
		Resolver: identity.NewResolver(issuer, store),
	}, Options{})
}

func do(t *testing.T, h http.Handler, method, path, bearer string, body any) (*httptest.ResponseRecorder, httpx.Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env httpx.Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func login(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d (%s)", email, rec.Code, rec.Body.String())
	}
	raw, _ := json.Marshal(env.Data)
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || out.Token == "" {
		t.Fatalf("login %s: no token in %s", email, raw)
	}
	return out.Token
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{AlwaysAllow: true})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{AlwaysAllow: true})

	rec, env := do(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nguyenvanan@gmail.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized || env.Message != "invalid credentials" {
		t.Fatalf("status %d, message %q", rec.Code, env.Message)
	}

	// unknown user reads the same as a wrong password
	rec2, env2 := do(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "wrong",
	})
	if rec2.Code != http.StatusUnauthorized || env2.Message != env.Message {
		t.Fatalf("unknown-user response differs: %d %q", rec2.Code, env2.Message)
	}
}

func TestLoginRejectsSuspended(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{AlwaysAllow: true})
	rec, _ := do(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "leminhcuong@hotmail.com", "password": "customer789",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{AlwaysAllow: true})
	rec, env := do(t, h, http.MethodGet, "/accounts/0123456789/balance", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env.Message != "access token is required" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestDepositFlow(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{AlwaysAllow: true})
	tok := login(t, h, "phamthidung@mbbank.com", "teller123")

	rec, env := do(t, h, http.MethodPost, "/accounts/0123456789/deposit", tok, map[string]any{
		"amount": 5_000_000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if env.Message != "Deposit completed successfully" {
		t.Fatalf("message = %q", env.Message)
	}

	raw, _ := json.Marshal(env.Data)
	var res struct {
		NewBalance  int64 `json:"new_balance"`
		Transaction struct {
			Type   string `json:"transaction_type"`
			Status string `json:"status"`
		} `json:"transaction"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if res.NewBalance != 255_000_000 {
		t.Fatalf("new_balance = %d", res.NewBalance)
	}
	if res.Transaction.Type != "deposit" || res.Transaction.Status != "completed" {
		t.Fatalf("transaction: %+v", res.Transaction)
	}
}

func TestTransferFlowExternal(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{AlwaysAllow: true})
	tok := login(t, h, "nguyenvanan@gmail.com", "customer123")

	rec, env := do(t, h, http.MethodPost, "/accounts/0123456789/transfer", tok, map[string]any{
		"to_account": "VCB-555123", "amount": 2_000_000, "transfer_type": "external",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if env.Message != "External transfer initiated successfully" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestDenyMapsToForbidden(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{}) // deny everything
	tok := login(t, h, "nguyenvanan@gmail.com", "customer123")

	rec, _ := do(t, h, http.MethodPost, "/accounts/0123456789/withdraw", tok, map[string]any{
		"amount": 1_000,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestPDPOutageMapsToServiceUnavailable(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{Err: context.DeadlineExceeded})
	tok := login(t, h, "nguyenvanan@gmail.com", "customer123")

	rec, _ := do(t, h, http.MethodPost, "/accounts/0123456789/deposit", tok, map[string]any{
		"amount": 1_000,
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestAuditorSeesRedactedBalances(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{AlwaysAllow: true})
	tok := login(t, h, "lythilan@mbbank.com", "auditor123")

	rec, env := do(t, h, http.MethodGet, "/accounts", tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	raw, _ := json.Marshal(env.Data)
	var accounts []map[string]any
	if err := json.Unmarshal(raw, &accounts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("accounts = %d, want 3", len(accounts))
	}
	for _, a := range accounts {
		if a["balance"] != "***" {
			t.Fatalf("balance not redacted for auditor: %v", a["balance"])
		}
	}
}

func TestManagerSeesRealBalances(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{AlwaysAllow: true})
	tok := login(t, h, "hoangvanem@mbbank.com", "manager123")

	rec, env := do(t, h, http.MethodGet, "/accounts", tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	raw, _ := json.Marshal(env.Data)
	var accounts []map[string]any
	if err := json.Unmarshal(raw, &accounts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, a := range accounts {
		if _, ok := a["balance"].(float64); !ok {
			t.Fatalf("balance should be numeric: %v", a["balance"])
		}
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	h := newTestRouter(t, &authz.Mock{AlwaysAllow: true})
	rec, env := do(t, h, http.MethodGet, "/nope", "", nil)
	if rec.Code != http.StatusNotFound || env.Message != "endpoint not found" {
		t.Fatalf("status %d, message %q", rec.Code, env.Message)
	}
}

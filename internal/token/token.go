// Package token mints and verifies the bearer credentials issued at login.
// The token carries a snapshot of principal attributes for debuggability, but
// nothing downstream trusts the snapshot: the identity resolver re-fetches
// the principal from the store on every request.
package token

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/malware-d/bercos/internal/bank"
)

type Issuer struct {
	Secret []byte
	TTL    time.Duration
	Name   string // iss claim
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{Secret: secret, TTL: ttl, Name: "bercos"}
}

// Issue signs an HS256 token for the principal.
func (i *Issuer) Issue(p bank.Principal, now time.Time) (string, error) {
	tok, err := jwt.NewBuilder().
		Issuer(i.Name).
		Subject(p.CustomerID).
		IssuedAt(now).
		Expiration(now.Add(i.TTL)).
		Claim("email", p.Email).
		Claim("role", p.Role).
		Claim("branch_code", p.BranchCode).
		Claim("department", p.Department).
		Claim("approval_level", p.ApprovalLevel).
		Claim("status", string(p.Status)).
		Claim("email_verified", p.EmailVerified).
		Claim("sms_verified", p.SMSVerified).
		Claim("daily_limit", p.DailyLimit).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), i.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return string(signed), nil
}

// Verify checks the signature and the iat/exp window and returns the subject
// (customer id). Everything else about the principal is re-read from the
// store by the caller.
func (i *Issuer) Verify(raw string) (string, error) {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256(), i.Secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", bank.Wrap(bank.KindAuthentication, "invalid token", err)
	}
	sub, ok := tok.Subject()
	if !ok || sub == "" {
		return "", bank.E(bank.KindAuthentication, "token has no subject")
	}
	return sub, nil
}

package authz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cerbos/cerbos-sdk-go/cerbos"
	effectv1 "github.com/cerbos/cerbos/api/genpb/cerbos/effect/v1"
	schemav1 "github.com/cerbos/cerbos/api/genpb/cerbos/schema/v1"

	"github.com/malware-d/bercos/internal/bank"
)

// Cerbos evaluates requests against a Cerbos PDP over gRPC. Decisions are
// requested one action at a time, mirroring how callers consume them; no
// response is ever cached.
type Cerbos struct {
	c       *cerbos.GRPCClient
	timeout time.Duration
}

type CerbosConfig struct {
	Address   string        // host:port of the PDP gRPC endpoint
	Timeout   time.Duration // per-check deadline; expiry is fail-closed
	Plaintext bool          // dev only
}

func NewCerbos(cfg CerbosConfig) (*Cerbos, error) {
	var opts []cerbos.Opt
	if cfg.Plaintext {
		opts = append(opts, cerbos.WithPlaintext())
	}
	if cfg.Timeout > 0 {
		opts = append(opts, cerbos.WithConnectTimeout(cfg.Timeout))
	}
	client, err := cerbos.New(cfg.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("cerbos_client_init: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Cerbos{c: client, timeout: timeout}, nil
}

func (c *Cerbos) Check(ctx context.Context, req Request) (Decision, error) {
	principal := cerbos.NewPrincipal(req.Principal.CustomerID, req.Principal.Role)
	principal.WithPolicyVersion(req.PolicyVersion)
	principal.WithAttributes(principalAttributes(req.Principal))

	resource := cerbos.NewResource(req.ResourceKind, req.ResourceID)
	resource.WithPolicyVersion(req.PolicyVersion)
	resource.WithAttributes(req.Attributes)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	batch := cerbos.NewResourceBatch()
	batch.Add(resource, req.Action)

	resp, err := c.c.CheckResources(ctx, principal, batch)
	if err != nil {
		// Transport failure or deadline: fail closed, but let the caller
		// surface it apart from a logical deny.
		return Decision{}, bank.Wrap(bank.KindPDPUnavailable, "policy decision point unreachable", err)
	}

	for _, res := range resp.GetResults() {
		if res.GetResource().GetId() != req.ResourceID {
			continue
		}
		if res.GetActions()[req.Action] == effectv1.Effect_EFFECT_ALLOW {
			return Decision{Allowed: true}, nil
		}
		return Decision{Allowed: false, Reason: denyReason(res.GetValidationErrors())}, nil
	}
	// A well-formed reply always echoes the requested resource; a missing
	// entry means the PDP did not evaluate it.
	return Decision{}, bank.E(bank.KindPDPUnavailable, "policy decision point returned no result for resource")
}

// denyReason folds the PDP's schema validation errors into the denial reason
// so the caller's error says which attribute failed, not just that something
// did. A plain deny stays "policy_denied".
func denyReason(ves []*schemav1.ValidationError) string {
	if len(ves) == 0 {
		return "policy_denied"
	}
	parts := make([]string, 0, len(ves))
	for _, ve := range ves {
		parts = append(parts, ve.GetPath()+": "+ve.GetMessage())
	}
	return strings.Join(parts, "; ")
}

// principalAttributes mirrors the attribute set the account policies match
// on. Values come from the store, not from token claims.
func principalAttributes(p bank.Principal) map[string]any {
	return map[string]any{
		"customer_id":    p.CustomerID,
		"email":          p.Email,
		"role":           p.Role,
		"status":         string(p.Status),
		"email_verified": p.EmailVerified,
		"sms_verified":   p.SMSVerified,
		"daily_limit":    p.DailyLimit,
		"branch_code":    p.BranchCode,
		"department":     p.Department,
		"approval_level": p.ApprovalLevel,
		"read_only":      p.ReadOnly,
	}
}

package authz

import (
	"context"

	"github.com/malware-d/bercos/internal/bank"
)

// Decision is the PDP verdict for one action. It is transient: callers must
// obtain a fresh one for every mutating operation, never cache or reuse it.
type Decision struct {
	Allowed bool
	Reason  string
}

// Request is the decision-ready triple sent to the PDP. Resource attributes
// mix trusted state (the stored account) with transient caller-supplied
// quantities such as deposit_amount; the action name itself is always chosen
// server-side.
type Request struct {
	Principal     bank.Principal
	Action        string
	ResourceKind  string
	ResourceID    string
	Attributes    map[string]any
	PolicyVersion string
}

// Authorizer is the Policy Decision Point client. Implementations must be
// fail-closed: any transport or timeout error surfaces as a PDPUnavailable
// error, which callers treat exactly like a Deny for mutation purposes.
type Authorizer interface {
	Check(ctx context.Context, req Request) (Decision, error)
}

package authz

import (
	"context"
	"sync"

	"github.com/malware-d/bercos/internal/bank"
)

// Mock is a test double. CheckFn wins when set; otherwise AlwaysAllow
// decides. Err simulates an unreachable PDP.
type Mock struct {
	AlwaysAllow bool
	Err         error
	CheckFn     func(req Request) (Decision, error)

	mu       sync.Mutex
	requests []Request
}

func (m *Mock) Check(ctx context.Context, req Request) (Decision, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.Err != nil {
		return Decision{}, bank.Wrap(bank.KindPDPUnavailable, "policy decision point unreachable", m.Err)
	}
	if m.CheckFn != nil {
		return m.CheckFn(req)
	}
	if m.AlwaysAllow {
		return Decision{Allowed: true}, nil
	}
	return Decision{Allowed: false, Reason: "mock_deny"}, nil
}

// Requests returns the checks seen so far.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

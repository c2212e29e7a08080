package audit

import (
	"log/slog"
	"sync"
)

// SlogSink writes entries as structured log lines.
type SlogSink struct {
	Logger *slog.Logger
}

func (s *SlogSink) Write(e Entry) {
	lg := s.Logger
	if lg == nil {
		lg = slog.Default()
	}
	lg.Info("audit",
		"kind", string(e.Kind),
		"ts", e.Timestamp,
		"principal", e.PrincipalID,
		"action", e.Action,
		"resource", e.ResourceID,
		"allowed", e.Allowed,
		"reason", e.Reason,
		"accounts", e.Accounts,
		"txn", e.TransactionID,
	)
}

// MemorySink retains entries for inspection in tests.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

func (s *MemorySink) Write(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

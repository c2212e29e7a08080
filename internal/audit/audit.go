// Package audit is the append-only decision and mutation log. Writes are
// asynchronous and must never block or fail the operation that produced
// them; when the buffer is full the entry is dropped and counted, which is
// the degraded-mode signal operators alert on.
package audit

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type EntryKind string

const (
	KindDecision EntryKind = "decision"
	KindMutation EntryKind = "mutation"
)

type Entry struct {
	Kind          EntryKind `json:"kind"`
	Timestamp     time.Time `json:"timestamp"`
	PrincipalID   string    `json:"principal_id"`
	Action        string    `json:"action"`
	ResourceID    string    `json:"resource_id"`
	Allowed       bool      `json:"allowed,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Accounts      []string  `json:"accounts,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
}

// Sink receives entries in order, one goroutine at a time.
type Sink interface {
	Write(e Entry)
}

// Log fans entries out to a sink through a bounded buffer.
type Log struct {
	ch      chan Entry
	dropped atomic.Uint64
	done    chan struct{}
	once    sync.Once
}

func New(sink Sink, buffer int) *Log {
	if buffer <= 0 {
		buffer = 256
	}
	l := &Log{
		ch:   make(chan Entry, buffer),
		done: make(chan struct{}),
	}
	go func() {
		defer close(l.done)
		for e := range l.ch {
			sink.Write(e)
		}
	}()
	return l
}

// Record enqueues without blocking. Returns false when the entry was dropped.
func (l *Log) Record(e Entry) bool {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	select {
	case l.ch <- e:
		return true
	default:
		n := l.dropped.Add(1)
		slog.Warn("audit entry dropped", "total_dropped", n, "kind", e.Kind, "action", e.Action)
		return false
	}
}

func (l *Log) Decision(principalID, action, resourceID string, allowed bool, reason string) {
	l.Record(Entry{
		Kind:        KindDecision,
		PrincipalID: principalID,
		Action:      action,
		ResourceID:  resourceID,
		Allowed:     allowed,
		Reason:      reason,
	})
}

func (l *Log) Mutation(principalID, action string, accounts []string, transactionID string) {
	l.Record(Entry{
		Kind:          KindMutation,
		PrincipalID:   principalID,
		Action:        action,
		Accounts:      accounts,
		TransactionID: transactionID,
	})
}

// Dropped reports how many entries were discarded since start.
func (l *Log) Dropped() uint64 { return l.dropped.Load() }

// Close flushes buffered entries and stops the writer goroutine.
func (l *Log) Close() {
	l.once.Do(func() { close(l.ch) })
	<-l.done
}

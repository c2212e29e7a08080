package bank

import (
	"errors"
	"fmt"
)

// Kind classifies failures so the transport layer can map them to status
// codes without string matching. Every kind except Internal means "no
// mutation happened".
type Kind uint8

const (
	KindInternal Kind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindNotFound
	KindConflict
	KindPDPUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPDPUnavailable:
		return "pdp_unavailable"
	default:
		return "internal"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind sentinels, e.g. errors.Is(err, bank.ErrDenied).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

func E(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind carried by err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Kind sentinels for errors.Is checks.
var (
	ErrBadCredentials = E(KindAuthentication, "invalid credentials")
	ErrInactive       = E(KindAuthentication, "principal is not active")
	ErrDenied         = E(KindAuthorization, "")
	ErrBadAmount      = E(KindValidation, "amount must be positive")
	ErrNoDestination  = E(KindValidation, "destination account is required")
	ErrAccountExists  = E(KindConflict, "account already exists")
	ErrNotFound       = E(KindNotFound, "account doesn't exist")
	ErrFrozen         = E(KindConflict, "account is frozen")
	ErrInsufficient   = E(KindConflict, "insufficient balance")
	ErrPDPUnavailable = E(KindPDPUnavailable, "")
)

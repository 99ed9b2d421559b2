package apperrors

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"
)

// Kind is the category of a classified error.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindDuplicateEmail    Kind = "duplicate_email"
	KindInvalidReference  Kind = "invalid_reference"
	KindInvalidData       Kind = "invalid_data"
	KindInvalidFormat     Kind = "invalid_format"
	KindInvalidParameters Kind = "invalid_parameters"
	KindHasDependents     Kind = "has_dependents"
	KindStoreUnavailable  Kind = "store_unavailable"
	KindInternal          Kind = "internal"
)

// Error is a classified application error. Op and Entity identify the failed
// operation for logging; Err holds the underlying cause and is never exposed
// to callers over the wire.
type Error struct {
	Kind   Kind
	Op     string
	Entity string
	ID     int64
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a caller-visible message.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Newf creates a classified error with a formatted caller-visible message.
func Newf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a classified error, or KindInternal for anything
// unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is a classified error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// PostgreSQL SQLSTATE codes and classes used by the classifier.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgClassIntegrity      = "23"
	pgClassDataException  = "22"
	pgClassConnection     = "08"
	pgOperatorIntervened  = "57"
)

// Classify maps a store-level failure onto the taxonomy. Structured SQLSTATE
// codes from the pq driver are consulted first; for errors that do not carry
// one, sniffText is a heuristic of last resort over the message text.
func Classify(op, entity string, id int64, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		// Already classified upstream; keep the original kind and message.
		return &Error{Kind: e.Kind, Op: op, Entity: entity, ID: id, Msg: e.Msg, Err: err}
	}

	kind, msg := classifyKind(err)
	return &Error{Kind: kind, Op: op, Entity: entity, ID: id, Msg: msg, Err: err}
}

func classifyKind(err error) (Kind, string) {
	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound, "record not found"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindStoreUnavailable, "store unavailable"
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		switch {
		case code == pgUniqueViolation:
			return KindDuplicateEmail, "email already registered"
		case code == pgForeignKeyViolation:
			return KindInvalidReference, "referenced record does not exist"
		case strings.HasPrefix(code, pgClassIntegrity):
			return KindInvalidData, "invalid data"
		case strings.HasPrefix(code, pgClassDataException):
			return KindInvalidFormat, "malformed field value"
		case strings.HasPrefix(code, pgClassConnection), strings.HasPrefix(code, pgOperatorIntervened):
			return KindStoreUnavailable, "store unavailable"
		default:
			return KindInternal, "internal error"
		}
	}

	return sniffText(err)
}

// sniffText infers the error kind from message text. It exists only for
// errors that reach us without a SQLSTATE code and is best-effort: ambiguous
// failures fall back to the broadest applicable kind.
func sniffText(err error) (Kind, string) {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "duplicate key") || strings.Contains(text, "unique constraint"):
		return KindDuplicateEmail, "email already registered"
	case strings.Contains(text, "foreign key"):
		return KindInvalidReference, "referenced record does not exist"
	case strings.Contains(text, "constraint"):
		return KindInvalidData, "invalid data"
	case strings.Contains(text, "connection refused"),
		strings.Contains(text, "connection reset"),
		strings.Contains(text, "broken pipe"),
		strings.Contains(text, "bad connection"),
		strings.Contains(text, "no such host"):
		return KindStoreUnavailable, "store unavailable"
	default:
		return KindInternal, "internal error"
	}
}

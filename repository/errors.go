package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by every tier. Callers match them with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrConflict    = errors.New("conflict")
	ErrInvalid     = errors.New("invalid")
)

// Named errors that carry one of the kinds above
var (
	ErrNotImplemented  = fmt.Errorf("%w: not implemented", ErrUnavailable)
	ErrAuthorNotFound  = fmt.Errorf("%w: author does not exist", ErrNotFound)
	ErrDigestMismatch  = fmt.Errorf("%w: digest does not match payload", ErrInvalid)
	ErrMalformedDigest = fmt.Errorf("%w: digest must be 64 lowercase hex characters", ErrInvalid)
	ErrBlobUnchanged   = fmt.Errorf("%w: content is unchanged", ErrConflict)
	ErrZeroID          = fmt.Errorf("%w: id must not be 0", ErrInvalid)
)

// OpError records which tier and operation produced an error.
type OpError struct {
	Tier Tier
	Op   Operation
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Tier.String())
	b.WriteByte(' ')
	b.WriteString(string(e.Op))
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func opError(tier Tier, op Operation, kind, err error) error {
	return &OpError{Tier: tier, Op: op, Kind: kind, Err: err}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// KindOf returns the label of the first kind err carries, or "unknown".
func KindOf(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsNotFound(err):
		return "not_found"
	case IsInvalid(err):
		return "invalid"
	case IsConflict(err):
		return "conflict"
	case IsUnavailable(err):
		return "unavailable"
	default:
		return "unknown"
	}
}

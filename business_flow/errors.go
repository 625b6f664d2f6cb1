// Package businessflow contains the use cases behind each HTTP endpoint. Flows
// validate requests, sequence repository calls through the tier coordinator
// and translate storage results into DTOs.
package businessflow

import (
	"errors"
	"fmt"

	"github.com/Zayd-McArdle/MasjidApp/repository"
)

// Business flow error codes. Handlers map them onto HTTP statuses.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeUnavailable    = "UNAVAILABLE"
	CodeAuthorNotFound = "AUTHOR_NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

var (
	ErrTitleTooShort    = fmt.Errorf("%w: title must be at least %d characters", repository.ErrInvalid, minTitleLen)
	ErrTopicTooShort    = fmt.Errorf("%w: topic must be at least %d characters", repository.ErrInvalid, minTopicLen)
	ErrEmptyPayload     = fmt.Errorf("%w: payload must not be empty", repository.ErrInvalid)
	ErrAnswerIncomplete = fmt.Errorf("%w: answer requires imam name and text", repository.ErrInvalid)
	ErrNilRequest       = fmt.Errorf("%w: request is required", repository.ErrInvalid)
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// CodeOf returns the business code carried by err. Errors that never passed
// through a flow are classified by their repository kind.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return codeForKind(err)
}

func codeForKind(err error) string {
	switch {
	case errors.Is(err, repository.ErrAuthorNotFound):
		return CodeAuthorNotFound
	case repository.IsInvalid(err):
		return CodeInvalidRequest
	case repository.IsNotFound(err):
		return CodeNotFound
	case repository.IsConflict(err):
		return CodeConflict
	case repository.IsUnavailable(err):
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// wrap attaches a business code to err, keeping the repository kind
// reachable through errors.Is.
func wrap(message string, err error) error {
	if err == nil {
		return nil
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return err
	}
	return NewBusinessError(codeForKind(err), message, err)
}

func IsInvalidRequest(err error) bool {
	return CodeOf(err) == CodeInvalidRequest
}

func IsNotFound(err error) bool {
	return repository.IsNotFound(err)
}

func IsConflict(err error) bool {
	return repository.IsConflict(err)
}

func IsAuthorNotFound(err error) bool {
	return errors.Is(err, repository.ErrAuthorNotFound)
}

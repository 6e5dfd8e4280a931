package action

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorCode string

const (
	ErrCodeInvalidSpec     ErrorCode = "INVALID_SPEC"
	ErrCodeLoadFailed      ErrorCode = "LOAD_FAILED"
	ErrCodeDuplicateAction ErrorCode = "DUPLICATE_ACTION"
	ErrCodeCheckFailed     ErrorCode = "CHECK_FAILED"
	ErrCodeWriteFailed     ErrorCode = "WRITE_FAILED"
)

// Error provides structured error information
type Error struct {
	Code   ErrorCode
	Action string
	Field  string
	Cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("action")
	if e.Action != "" {
		fmt.Fprintf(&b, " %q", e.Action)
	}
	fmt.Fprintf(&b, ": %s", e.Code)
	if e.Field != "" {
		fmt.Fprintf(&b, " at %s", e.Field)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err carries an *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var actionErr *Error
	return errors.As(err, &actionErr) && actionErr.Code == code
}

func newSpecError(name string, err error) *Error {
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	specErr := &Error{Code: ErrCodeInvalidSpec, Action: name, Cause: err}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		specErr.Field = fieldPath(first.Namespace())
		specErr.Cause = fmt.Errorf("failed on %q rule", first.Tag())
	}
	return specErr
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

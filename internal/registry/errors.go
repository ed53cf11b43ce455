package registry

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error discriminator, surfaced verbatim in
// JSON output and in MCP tool responses.
type Code string

const (
	CodeValidation        Code = "validation_error"
	CodeDuplicateName     Code = "duplicate_name"
	CodeTierLimitExceeded Code = "tier_limit_exceeded"
	CodeNotFound          Code = "not_found"
	CodePersistence       Code = "persistence_error"
)

// Error is a registry operation failure with a discriminating code.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the discriminating code from an error chain,
// defaulting to the empty string for non-registry errors.
func ErrorCode(err error) Code {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsCode reports whether err carries the given registry error code.
func IsCode(err error, code Code) bool {
	return ErrorCode(err) == code
}

func validationErr(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func duplicateErr(name string) *Error {
	return &Error{Code: CodeDuplicateName, Message: fmt.Sprintf("a credential named %q already exists", name)}
}

func tierLimitErr(limit int) *Error {
	return &Error{Code: CodeTierLimitExceeded, Message: fmt.Sprintf("free tier is limited to %d credentials; remove one or upgrade", limit)}
}

func notFoundErr(name string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("no credential named %q", name)}
}

func persistenceErr(err error) *Error {
	return &Error{Code: CodePersistence, Message: "failed to persist credential store", Err: err}
}

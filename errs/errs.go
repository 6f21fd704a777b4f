// Package errs carries the error taxonomy shared by the repositories,
// the services and the HTTP controllers. Controllers switch on Code to
// pick a status; services and repositories attach codes close to where
// the condition is detected.
package errs

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation  Code = "VALIDATION"
	CodeNotFound    Code = "NOT_FOUND"
	CodeDuplicate   Code = "DUPLICATE_KEY"
	CodeUnavailable Code = "UNAVAILABLE"
	CodeLoanLimit   Code = "LOAN_LIMIT_EXCEEDED"
	CodeReferential Code = "REFERENTIAL_INTEGRITY"
	CodeStorage     Code = "STORAGE"
)

type codedError struct {
	code  Code
	msg   string
	cause error
}

func (e *codedError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *codedError) Code() Code    { return e.code }
func (e *codedError) Unwrap() error { return e.cause }

func Validation(format string, args ...any) error {
	return &codedError{code: CodeValidation, msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &codedError{code: CodeNotFound, msg: fmt.Sprintf(format, args...)}
}

func Duplicate(format string, args ...any) error {
	return &codedError{code: CodeDuplicate, msg: fmt.Sprintf(format, args...)}
}

func Unavailable(format string, args ...any) error {
	return &codedError{code: CodeUnavailable, msg: fmt.Sprintf(format, args...)}
}

func LoanLimit(format string, args ...any) error {
	return &codedError{code: CodeLoanLimit, msg: fmt.Sprintf(format, args...)}
}

func Referential(format string, args ...any) error {
	return &codedError{code: CodeReferential, msg: fmt.Sprintf(format, args...)}
}

// Storage wraps an infrastructure failure without hiding the cause, so
// callers can still distinguish "business rule violated" from "store broken".
func Storage(cause error, format string, args ...any) error {
	return &codedError{code: CodeStorage, msg: fmt.Sprintf(format, args...), cause: cause}
}

// CodeOf extracts the code from err, or "" if err carries none.
func CodeOf(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool { return CodeOf(err) == code }

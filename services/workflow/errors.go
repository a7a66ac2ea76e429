package workflow

import (
	"errors"
	"fmt"
)

// Code identifies a workflow failure category. Every code maps to a
// distinct user-visible message family so callers can tell "someone
// else already took this job" from "you're not allowed to do that".
type Code string

const (
	CodeNotFound            Code = "notFound"
	CodeAlreadyApplied      Code = "alreadyApplied"
	CodeNotOwner            Code = "notOwner"
	CodeAlreadyAssigned     Code = "alreadyAssigned"
	CodeApplicationNotFound Code = "applicationNotFound"
	CodePreconditionNotMet  Code = "preconditionNotMet"
	CodeInvalidAction       Code = "invalidAction"
	CodeInvalidStatus       Code = "invalidStatus"
	CodeConflict            Code = "conflict"
	CodeStorageUnavailable  Code = "storageUnavailable"
)

// Error is a typed workflow failure.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a typed workflow error.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrCode extracts the workflow code from err, or an empty Code when
// err is not a workflow error.
func ErrCode(err error) Code {
	var wfErr *Error
	if errors.As(err, &wfErr) {
		return wfErr.Code
	}
	return ""
}

// storageErr wraps a persistence failure. Retrying is the caller's
// responsibility.
func storageErr(err error) *Error {
	return NewError(CodeStorageUnavailable, "storage unavailable: %v", err)
}

package jobharvest

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID      = "invalid"      // validation failed on caller input
	ENOTFOUND     = "not_found"    // entity does not exist
	EQUOTA        = "quota"        // upstream quota/rate limit exhausted; fatal to the run
	EUNAUTHORIZED = "unauthorized" // upstream credential failure; fatal to the run
	EUNAVAILABLE  = "unavailable"  // transient upstream failure; eligible for retry
	EINTERNAL     = "internal"     // unexpected internal error
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jobharvest error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of an error, if available.
// Returns EINTERNAL for non-application errors and an empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of an error, if available.
// Returns a generic message for non-application errors and an empty string
// for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

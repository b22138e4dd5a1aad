package jobharvest

import (
	"errors"
	"strings"
)

// ErrorClass partitions upstream error messages by required handling.
type ErrorClass int

// Error classes. Transient errors follow the normal per-item retry path;
// Quota and Auth are fatal to the whole run.
const (
	ClassTransient ErrorClass = iota
	ClassQuota
	ClassAuth
)

// String returns the class name.
func (c ErrorClass) String() string {
	switch c {
	case ClassQuota:
		return "quota"
	case ClassAuth:
		return "auth"
	default:
		return "transient"
	}
}

// Fatal reports whether the class must halt the entire run.
func (c ErrorClass) Fatal() bool {
	return c == ClassQuota || c == ClassAuth
}

// quotaPatterns match rate-limit and usage-quota conditions.
var quotaPatterns = []string{
	"rate limit",
	"ratelimit",
	"quota",
	"usage limit",
	"too many requests",
	"resource exhausted",
	"resource_exhausted",
}

// quotaCodes are HTTP status codes indicating quota exhaustion. Matched as
// standalone tokens only: error text routinely embeds URLs and counts whose
// digit runs would otherwise false-match.
var quotaCodes = []string{"429"}

// authPatterns match credential and permission failures.
var authPatterns = []string{
	"unauthorized",
	"unauthenticated",
	"invalid credential",
	"invalid api key",
	"api key not valid",
	"permission denied",
	"forbidden",
}

// authCodes are HTTP status codes indicating credential failures.
// Token-matched for the same reason as quotaCodes.
var authCodes = []string{"401", "403"}

// Classify maps an upstream error message to an ErrorClass. It is total and
// deterministic: every string maps to exactly one class, and unrecognized
// messages (including 5xx/service-unavailable conditions) default to
// Transient. Quota patterns are tested before auth patterns; a message
// matching both is reported as Quota — either way the run halts.
func Classify(message string) ErrorClass {
	lower := strings.ToLower(message)
	for _, p := range quotaPatterns {
		if strings.Contains(lower, p) {
			return ClassQuota
		}
	}
	for _, c := range quotaCodes {
		if containsToken(lower, c) {
			return ClassQuota
		}
	}
	for _, p := range authPatterns {
		if strings.Contains(lower, p) {
			return ClassAuth
		}
	}
	for _, c := range authCodes {
		if containsToken(lower, c) {
			return ClassAuth
		}
	}
	return ClassTransient
}

// ClassifyErr classifies an error. An application error carries its class in
// the code assigned at the point of origin, which is authoritative: callers
// wrap messages with URLs and counts that must not influence the class.
// Other errors are classified by message text. A nil error is Transient.
func ClassifyErr(err error) ErrorClass {
	if err == nil {
		return ClassTransient
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Code {
		case EQUOTA:
			return ClassQuota
		case EUNAUTHORIZED:
			return ClassAuth
		case EINTERNAL:
			// Internal errors wrap upstream SDK text; inspect the message.
			return Classify(e.Message)
		}
		return ClassTransient
	}
	return Classify(err.Error())
}

// containsToken reports whether token occurs in s bounded by
// non-alphanumeric characters on both sides.
func containsToken(s, token string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], token)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(token)
		if (i == 0 || !isAlnum(s[i-1])) && (end == len(s) || !isAlnum(s[end])) {
			return true
		}
		from = i + 1
	}
}

func isAlnum(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// ClassCode returns the application error code for a class.
func ClassCode(class ErrorClass) string {
	switch class {
	case ClassQuota:
		return EQUOTA
	case ClassAuth:
		return EUNAUTHORIZED
	default:
		return EUNAVAILABLE
	}
}

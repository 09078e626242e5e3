package regex

import (
	pcre2 "github.com/alexey-pelykh/go-pcre2"
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrInvalidArgument is returned for malformed inputs: unknown flags,
	// negative limits, nil patterns.
	ErrInvalidArgument = errors.NewKind("%s")
	// ErrNoMatch is returned when a positional accessor or append operation
	// is invoked without a current match.
	ErrNoMatch = errors.NewKind("no match available")
	// ErrNoSuchGroup is returned for an unknown capture group name.
	ErrNoSuchGroup = errors.NewKind("no group with name <%s>")
	// ErrGroupIndex is returned for a capture group number out of range.
	ErrGroupIndex = errors.NewKind("no group %d")
	// ErrIndexOutOfBounds is returned for region or find offsets outside the
	// subject.
	ErrIndexOutOfBounds = errors.NewKind("index out of bounds: %d")
	// ErrInvalidReplacement is returned for a malformed replacement string.
	ErrInvalidReplacement = errors.NewKind("invalid replacement: %s")
	// ErrMatch wraps unexpected PCRE2 match-time failures.
	ErrMatch = errors.NewKind("match failed: %s")
)

// LimitExceededError reports that PCRE2 aborted a match because a configured
// resource budget was exhausted. Code is the specific PCRE2 error code
// (ERROR_MATCHLIMIT, ERROR_DEPTHLIMIT or ERROR_HEAPLIMIT).
type LimitExceededError struct {
	Code int32
}

func (e *LimitExceededError) Error() string {
	return "match aborted: " + pcre2.ErrorMessage(e.Code)
}

// IsLimitExceeded reports whether err is a *LimitExceededError.
func IsLimitExceeded(err error) bool {
	_, ok := err.(*LimitExceededError)
	return ok
}

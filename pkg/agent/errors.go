package agent

import (
	"errors"
	"fmt"
)

// ErrUnmappable means a capability could not map free text onto any known
// target or field. The reply says the information is unavailable; the
// capability never guesses.
var ErrUnmappable = errors.New("request could not be mapped to a known field")

// ErrNotFound means the mapped target or field has no stored value.
var ErrNotFound = errors.New("no record matches the request")

// ErrReasoning means the planner produced no usable plan after its retry.
// The core falls back to a document-search-only plan before giving up.
var ErrReasoning = errors.New("planner produced no usable plan")

// AccessDeniedError carries a human-readable reason that is safe to show to
// the requesting user. It never contains the protected value.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: %s", e.Reason)
}

func NewAccessDeniedError(reason string) error {
	return &AccessDeniedError{Reason: reason}
}

func IsAccessDenied(err error) bool {
	var denied *AccessDeniedError
	return errors.As(err, &denied)
}

// UpstreamError wraps a failure of an external collaborator (LLM, embedding
// service, database read). Eligible for exactly one retry with backoff.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure in %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

func IsUpstream(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream)
}

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a job or record does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when an API key does not match
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrInvalidStateTransition is returned when a job status change is not allowed
type ErrInvalidStateTransition struct {
	From fmt.Stringer
	To   fmt.Stringer
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrCapabilityMismatch is returned when a platform has no normalizer for an
// entity type. It is fatal for the request and never retried.
type ErrCapabilityMismatch struct {
	Entity   string
	Platform string
}

func (e *ErrCapabilityMismatch) Error() string {
	return fmt.Sprintf("%s does not support %s records", e.Platform, e.Entity)
}

// ErrValidation carries every violated rule for a canonical record
type ErrValidation struct {
	Entity string
	Errors []string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(e.Errors, "; "))
}

// ErrJobAlreadyRunning is returned when a job id is started twice
type ErrJobAlreadyRunning struct {
	JobID string
}

func (e *ErrJobAlreadyRunning) Error() string {
	return fmt.Sprintf("job %s is already processing", e.JobID)
}

// ErrTruncated is returned together with the records read so far when a
// listing stops at the page cap while the platform still has more.
type ErrTruncated struct {
	Platform string
	Resource string
	Pages    int
	Fetched  int
}

func (e *ErrTruncated) Error() string {
	return fmt.Sprintf("%s %s stopped at the %d page cap after %d records; results are incomplete", e.Platform, e.Resource, e.Pages, e.Fetched)
}

// AsTruncated reports whether err is or wraps an ErrTruncated
func AsTruncated(err error) (*ErrTruncated, bool) {
	var t *ErrTruncated
	if stderrors.As(err, &t) {
		return t, true
	}
	return nil, false
}

package service

import (
	"errors"
	"fmt"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrNotMember     = errors.New("user is not a member of this group")
	ErrInvalidEvent  = errors.New("invalid message event")
)

// StoreError marks a transient persistence failure. Callers that can retry
// later (archival) swallow it; callers on the request path surface it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsTransient reports whether err is a transient store failure.
func IsTransient(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

package pvapi

import (
	"errors"
	"fmt"
)

// ErrNotFound lets callers branch on a missing remote resource with
// errors.Is without holding the concrete type.
var ErrNotFound = errors.New("not found")

// Error is a remote failure (bad status or transport exception) reported
// after the retry policy is exhausted. The message preserves the method,
// path and cause verbatim.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func statusError(status int, method, path, body string) *Error {
	return &Error{msg: fmt.Sprintf("Unexpected status %d calling %s %s: %s", status, method, path, body)}
}

func transportError(kind, method, path string, cause error) *Error {
	return &Error{msg: fmt.Sprintf("Exception %s calling %s %s: %v", kind, method, path, cause)}
}

// NotFoundError is the distinguished 404 outcome so "booking no longer
// exists" can be told apart from "service is down". Matches ErrNotFound.
type NotFoundError struct {
	Method string
	Path   string
}

func (e *NotFoundError) Error() string { return e.Method + " " + e.Path }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DecodeError is a contract mismatch with the remote service: a success
// response whose body cannot be decoded. Never retried.
type DecodeError struct {
	Method string
	Path   string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response to %s %s: %v", e.Method, e.Path, e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

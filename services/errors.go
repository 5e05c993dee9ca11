package services

import "errors"

// ErrNoPosts signals an empty listing. It maps to 404 like a missing
// document, but it is not a failure.
var ErrNoPosts = errors.New("no posts found")

// ValidationError reports a missing or malformed request field. The
// message is safe to return to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

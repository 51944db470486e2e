// Package apierrors provides shared error types for the SmartEmailing client.
package apierrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingCredentials is returned when the user or token is empty.
	ErrMissingCredentials = errors.New("user and token are required")

	// ErrTransport matches every TransportError.
	ErrTransport = errors.New("transport failure")

	// ErrService matches every ServiceError.
	ErrService = errors.New("service returned an error")

	// ErrValidation matches every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyEmail is returned when an operation needs an email address and got none.
	ErrEmptyEmail = errors.New("email must not be empty")

	// ErrEmptyTags is returned when a tag upsert is requested without tags.
	ErrEmptyTags = errors.New("tag list is empty")

	// ErrNoContactID is returned when the service did not report a contact id.
	ErrNoContactID = errors.New("no contact_id returned")

	// ErrContactNotFound is returned when a contact detail could not be loaded.
	ErrContactNotFound = errors.New("contact not found")

	// ErrContactWithoutEmail is returned when a loaded contact has no email address.
	ErrContactWithoutEmail = errors.New("contact has no email address")

	// ErrListNotFound is returned when a contact list does not exist.
	ErrListNotFound = errors.New("contact list not found")
)

// SmartEmailingError is implemented by all client errors.
type SmartEmailingError interface {
	error
	SmartEmailingError() // marker method
}

// TransportError represents a failure outside the HTTP status classification:
// DNS, refused connections, timeouts, TLS failures or unreadable bodies.
type TransportError struct {
	Message string
	URL     string
	// Code is a numeric code when one is available (for example the HTTP
	// status of a response whose body could not be read), otherwise 0.
	Code int
	Err  error
}

func (e *TransportError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("transport error (code %d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// SmartEmailingError implements the SmartEmailingError interface.
func (e *TransportError) SmartEmailingError() {}

// ServiceError is a classified error response carrying the service-supplied message.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

// SmartEmailingError implements the SmartEmailingError interface.
func (e *ServiceError) SmartEmailingError() {}

// ShapeError is returned when a successful response lacks something an
// operation depends on.
type ShapeError struct {
	Op  string
	Err error
}

func (e *ShapeError) Error() string {
	cause := "unexpected response shape"
	if e.Err != nil {
		cause = e.Err.Error()
	}
	if e.Op == "" {
		return cause
	}
	return fmt.Sprintf("%s: %s", e.Op, cause)
}

// Unwrap returns the underlying error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}

// SmartEmailingError implements the SmartEmailingError interface.
func (e *ShapeError) SmartEmailingError() {}

// ValidationError contains caller input problems detected before any request.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Unwrap returns the individual validation failures.
func (e *ValidationError) Unwrap() []error {
	return e.Errors
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SmartEmailingError implements the SmartEmailingError interface.
func (e *ValidationError) SmartEmailingError() {}

// Message returns the text shown to callers in an operation result.
// Shape and validation failures are shown without their wrapping prefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) && len(valErr.Errors) > 0 {
		return valErr.Errors[0].Error()
	}
	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) && shapeErr.Err != nil {
		return shapeErr.Err.Error()
	}
	return err.Error()
}

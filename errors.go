package smartemailing

import (
	"errors"
	"fmt"

	"github.com/lemonade-framework/smartemailing-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingCredentials is returned when the user or token is empty.
	ErrMissingCredentials = apierrors.ErrMissingCredentials

	// ErrTransport matches every TransportError.
	ErrTransport = apierrors.ErrTransport

	// ErrService matches every ServiceError.
	ErrService = apierrors.ErrService

	// ErrValidation matches every ValidationError.
	ErrValidation = apierrors.ErrValidation

	// ErrEmptyEmail is returned when an operation needs an email address and got none.
	ErrEmptyEmail = apierrors.ErrEmptyEmail

	// ErrEmptyTags is returned when tags are added without any tag.
	ErrEmptyTags = apierrors.ErrEmptyTags

	// ErrNoContactID is returned when the service did not report a contact id.
	ErrNoContactID = apierrors.ErrNoContactID

	// ErrContactNotFound is returned when a contact detail could not be loaded.
	ErrContactNotFound = apierrors.ErrContactNotFound

	// ErrContactWithoutEmail is returned when a loaded contact has no email address.
	ErrContactWithoutEmail = apierrors.ErrContactWithoutEmail

	// ErrListNotFound is returned when a contact list does not exist.
	ErrListNotFound = apierrors.ErrListNotFound

	// ErrPanic matches every PanicError.
	ErrPanic = errors.New("operation panicked")
)

// SmartEmailingError is implemented by all client errors.
type SmartEmailingError = apierrors.SmartEmailingError

// TransportError represents a failure to reach the service or read its reply.
type TransportError = apierrors.TransportError

// ServiceError is a failure reported by the service, carrying its message.
type ServiceError = apierrors.ServiceError

// ShapeError is returned when a successful reply lacks a required value.
type ShapeError = apierrors.ShapeError

// ValidationError contains caller input problems detected before any request.
type ValidationError = apierrors.ValidationError

// PanicError is a panic recovered inside an operation.
type PanicError struct {
	Op    string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: panic: %v", e.Op, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Is implements errors.Is for sentinel error matching.
func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}

// SmartEmailingError implements the SmartEmailingError interface.
func (e *PanicError) SmartEmailingError() {}

// ErrorMessage returns the message a failed Response carries for err.
func ErrorMessage(err error) string {
	return apierrors.Message(err)
}

package domain

import "fmt"

// NotFoundError indicates that a resource does not exist, or that the caller
// is not allowed to know whether it exists.
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError creates a NotFoundError for a resource identified by id.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  fmt.Sprintf("%s with id %s not found", resource, id),
	}
}

// NewNotFoundMessage creates a NotFoundError with a custom message.
func NewNotFoundMessage(resource, message string) *NotFoundError {
	return &NotFoundError{Resource: resource, Message: message}
}

// ValidationError indicates a business-rule or input violation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ForbiddenError indicates the caller is known but not permitted.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// NewForbiddenError creates a ForbiddenError with the given message.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// ConflictError indicates the operation clashes with existing state,
// e.g. a duplicate email.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

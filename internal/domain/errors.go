// Package domain holds the quoting entities, their invariants and the error
// taxonomy shared by every layer. Nothing here knows about HTTP, SQL or the
// upstream platforms; adapters translate these errors at their boundary.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate entry.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates a request broke an input rule.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a local dependency (store, cache) cannot be reached.
	ErrUnavailable = errors.New("unavailable")

	// ErrIntegration indicates an upstream platform call failed.
	ErrIntegration = errors.New("integration failed")

	// ErrInfrastructure indicates the service could not persist its own state.
	ErrInfrastructure = errors.New("infrastructure failure")
)

// NotFoundError names the entity that could not be found.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error for entity/id.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError describes a write that collided with existing state.
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns ErrConflict.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// ValidationError reports a single offending field.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error that keeps the rejected value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// UnavailableError reports a local dependency that did not respond.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("service %q unavailable", e.Service)
	}

	return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
}

// Unwrap returns ErrUnavailable.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IntegrationError describes a failed call to an upstream platform.
// StatusCode is zero when no response was received.
type IntegrationError struct {
	Service    string
	Operation  string
	StatusCode int
	Body       string
	Cause      error
}

func (e *IntegrationError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Service, e.Operation)

	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s with status %d", msg, e.StatusCode)
		if e.Body != "" {
			msg += ": " + e.Body
		}
	}

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap exposes both ErrIntegration and the underlying cause.
func (e *IntegrationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrIntegration}
	}

	return []error{ErrIntegration, e.Cause}
}

// NewIntegrationError creates an integration error for a failed response.
func NewIntegrationError(service, operation string, statusCode int, body string) error {
	return &IntegrationError{Service: service, Operation: operation, StatusCode: statusCode, Body: body}
}

// WrapIntegrationError creates an integration error around a transport or decode failure.
func WrapIntegrationError(service, operation string, cause error) error {
	return &IntegrationError{Service: service, Operation: operation, Cause: cause}
}

// InfrastructureError reports that the service failed to read or write its own state.
type InfrastructureError struct {
	Operation string
	Cause     error
}

func (e *InfrastructureError) Error() string {
	if e.Cause == nil {
		return e.Operation + " failed"
	}

	return fmt.Sprintf("%s failed: %v", e.Operation, e.Cause)
}

// Unwrap exposes both ErrInfrastructure and the underlying cause.
func (e *InfrastructureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInfrastructure}
	}

	return []error{ErrInfrastructure, e.Cause}
}

// NewInfrastructureError wraps cause as an infrastructure failure of operation.
func NewInfrastructureError(operation string, cause error) error {
	return &InfrastructureError{Operation: operation, Cause: cause}
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable reports whether err is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsIntegration reports whether err is an upstream integration error.
func IsIntegration(err error) bool {
	return errors.Is(err, ErrIntegration)
}

// IsInfrastructure reports whether err is an infrastructure error.
func IsInfrastructure(err error) bool {
	return errors.Is(err, ErrInfrastructure)
}

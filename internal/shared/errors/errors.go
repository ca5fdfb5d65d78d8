// Package errors provides application-level error types and utilities.
// It defines the error taxonomy surfaced to the user: validation,
// authentication, authorization-at-login, closed-ticket and delivery errors.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation_error"
	ErrorTypeAuthentication   ErrorType = "authentication_error"
	ErrorTypeUnregisteredUser ErrorType = "unregistered_user"
	ErrorTypeInvalidRole      ErrorType = "invalid_role"
	ErrorTypeTicketClosed     ErrorType = "ticket_closed"
	ErrorTypeUnauthenticated  ErrorType = "unauthenticated"
	ErrorTypeDelivery         ErrorType = "delivery_error"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeConflict         ErrorType = "conflict"
	ErrorTypeInternal         ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newError(errType ErrorType, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Details: detail,
	}
}

// NewValidationError creates a new validation error for bad local input
func NewValidationError(message string, details ...string) *AppError {
	return newError(ErrorTypeValidation, message, details)
}

// NewAuthenticationError creates a new authentication error for rejected credentials
func NewAuthenticationError(message string, details ...string) *AppError {
	return newError(ErrorTypeAuthentication, message, details)
}

// NewUnregisteredUserError creates an error for an authenticated identity
// without a corresponding user record
func NewUnregisteredUserError(message string, details ...string) *AppError {
	return newError(ErrorTypeUnregisteredUser, message, details)
}

// NewInvalidRoleError creates an error for a user record whose role is not in
// the allowed set
func NewInvalidRoleError(message string, details ...string) *AppError {
	return newError(ErrorTypeInvalidRole, message, details)
}

// NewTicketClosedError creates an error for a write attempted on a closed ticket
func NewTicketClosedError(message string, details ...string) *AppError {
	return newError(ErrorTypeTicketClosed, message, details)
}

// NewUnauthenticatedError creates an error for an action that requires a session
func NewUnauthenticatedError(message string, details ...string) *AppError {
	return newError(ErrorTypeUnauthenticated, message, details)
}

// NewDeliveryError creates a new delivery error for transient backend failures
func NewDeliveryError(message string, details ...string) *AppError {
	return newError(ErrorTypeDelivery, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newError(ErrorTypeNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newError(ErrorTypeConflict, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newError(ErrorTypeInternal, message, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsAuthenticationError checks if the error is an authentication error
func IsAuthenticationError(err error) bool {
	return isType(err, ErrorTypeAuthentication)
}

// IsUnregisteredUserError checks if the error is an unregistered user error
func IsUnregisteredUserError(err error) bool {
	return isType(err, ErrorTypeUnregisteredUser)
}

// IsInvalidRoleError checks if the error is an invalid role error
func IsInvalidRoleError(err error) bool {
	return isType(err, ErrorTypeInvalidRole)
}

// IsTicketClosedError checks if the error is a ticket closed error
func IsTicketClosedError(err error) bool {
	return isType(err, ErrorTypeTicketClosed)
}

// IsUnauthenticatedError checks if the error is an unauthenticated error
func IsUnauthenticatedError(err error) bool {
	return isType(err, ErrorTypeUnauthenticated)
}

// IsDeliveryError checks if the error is a delivery error
func IsDeliveryError(err error) bool {
	return isType(err, ErrorTypeDelivery)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

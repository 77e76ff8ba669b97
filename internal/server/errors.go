// Package server provides the HTTP REST API for the skill gap analyzer.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrAnalysisNotFound indicates the requested analysis does not exist
type ErrAnalysisNotFound struct {
	AnalysisID uuid.UUID
}

func (e *ErrAnalysisNotFound) Error() string {
	return fmt.Sprintf("analysis not found: %s", e.AnalysisID)
}

// ErrRoleNotFound indicates the requested job role does not exist
type ErrRoleNotFound struct {
	RoleID string
}

func (e *ErrRoleNotFound) Error() string {
	return fmt.Sprintf("job role not found: %s", e.RoleID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBackend indicates an upstream dependency (storage, database, job fetch)
// failed. The message is the single string surfaced to the client.
type ErrBackend struct {
	Message string
}

func (e *ErrBackend) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrUserNotFound, *ErrAnalysisNotFound, *ErrRoleNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrBackend:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

package service

import "fmt"

// NotFoundError means a referenced resource does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ValidationError covers malformed fields, missing required values and
// invalid discount codes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthError means credentials were rejected. Distinct from ValidationError
// so the gateway can answer 401 instead of 400.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func notFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Package repo implements ownership-scoped data access. Every operation
// takes an explicit Principal and restricts reads and writes to that
// principal's rows unless the role policy grants a wider scope. Domain
// invariants are validated here, never in handlers.
package repo

import (
	"errors"
	"fmt"
)

// Principal is the authenticated identity attached to a request. It is
// derived from verified bearer claims and passed explicitly; repositories
// never read identity from ambient state.
type Principal struct {
	UserID   uint64 // Authenticated user ID.
	Username string // Login name from the token.
	Role     string // Role tag from the token.
}

// Sentinel failures returned by repository operations.
var (
	// ErrNotFound covers both truly absent rows and rows owned by another
	// principal; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("repo: not found")
	// ErrForbidden indicates the principal's role does not permit the operation.
	ErrForbidden = errors.New("repo: forbidden")
	// ErrConflict indicates a concurrent write invalidated a passed check.
	ErrConflict = errors.New("repo: conflict")
	// ErrInvalidCredentials covers unknown usernames and wrong passwords alike.
	ErrInvalidCredentials = errors.New("repo: invalid credentials")
)

// ValidationError reports a rejected field with a stable reason.
type ValidationError struct {
	Field  string // Offending input field.
	Reason string // Stable human-readable reason.
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// validationFailed builds a field-level validation error.
func validationFailed(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidation extracts a ValidationError from an error chain.
func AsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

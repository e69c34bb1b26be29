package services

import (
	"errors"
	"fmt"
)

var (
	// Account errors.
	ErrDuplicateAccount   = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors surfaced directly to the user.
	ErrValidation      = errors.New("validation failed")
	ErrInvalidURL      = errors.New("invalid URL")
	ErrInvalidPassword = errors.New("password must be 6-15 characters long")

	// Short code errors.
	ErrShortCodeExists         = errors.New("short code already exists")
	ErrCodeGenerationExhausted = errors.New("could not generate a unique short code")

	// ErrNotFoundOrForbidden covers both a missing link and a link owned
	// by someone else, so existence is never leaked.
	ErrNotFoundOrForbidden = errors.New("link not found")

	// Resolver outcomes.
	ErrLinkNotFound    = errors.New("link not found")
	ErrLinkDeactivated = errors.New("link has been deactivated")
	ErrLinkExpired     = errors.New("link has expired")
)

// PasswordRequiredError is returned by the resolver when a protected
// link is visited without the correct password. It carries the display
// name for the password prompt.
type PasswordRequiredError struct {
	DisplayName string
}

func (e *PasswordRequiredError) Error() string {
	return fmt.Sprintf("link %q requires a password", e.DisplayName)
}

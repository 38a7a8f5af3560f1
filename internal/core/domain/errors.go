package domain

import "errors"

// ErrInvalidInput marks a request the service refuses before touching storage.
// Wrap it with the field-level reason: fmt.Errorf("%w: ...", ErrInvalidInput).
var ErrInvalidInput = errors.New("invalid input")

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

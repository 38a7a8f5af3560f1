package notesclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned before any request when nobody is logged in.
	ErrNoSession = errors.New("notesclient: no active session")
	// ErrUnauthorized matches the *UnauthorizedError returned when a scoped call gets 401.
	ErrUnauthorized = errors.New("notesclient: unauthorized")
	ErrNotFound     = errors.New("notesclient: note not found")
)

// AuthError is a rejected login or signup. Detail is the server's message.
type AuthError struct {
	Status int
	Detail string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (%d): %s", e.Status, e.Detail)
}

// UnauthorizedError is returned after the session was torn down because of a 401.
type UnauthorizedError struct {
	Detail string
}

func (e *UnauthorizedError) Error() string {
	return "unauthorized: " + e.Detail
}

func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// TransportError covers an unreachable server and an undecodable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is any other non-2xx answer.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Detail)
}

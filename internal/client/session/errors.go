package session

import "errors"

// ErrDecode marks a token whose payload segment could not be decoded.
// It is logged by Session and never surfaced to callers of Login.
var ErrDecode = errors.New("token decode failed")

// AuthenticationError is a rejected login or registration: bad credentials,
// duplicate e-mail and similar user-correctable conditions.
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string { return e.Message }

func (e *AuthenticationError) Unwrap() error { return e.Err }

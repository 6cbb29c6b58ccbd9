package common

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that need a bearer token
	// while the session holds none.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Package services contains the application services behind the client's
// protected pages: the destination risk tracker and the account view.
//
// Services read the bearer token from the session on every call and fail
// with common.ErrNotAuthenticated when there is none, without contacting
// the backend.
package services

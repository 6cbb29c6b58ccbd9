// Package api is the client's view of the travel-risk backend: a thin
// HTTP/JSON client for the auth, account, destination and alert endpoints.
//
// # Error Handling
//
// Transport failures map to ErrUnavailable. Non-2xx responses become *Error
// carrying the status code and the server's "message" field; 401/403 also
// match ErrUnauthorized and 404 matches ErrNotFound via errors.Is.
//
// Tokens are passed per call. The client itself holds no session state;
// the session package owns the token lifecycle.
package api

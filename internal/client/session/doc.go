// Package session owns the client's authentication state: the bearer token
// and the user identity derived from it.
//
// The token is the single source of truth. It is persisted through
// TokenStore, loaded once when a Session is constructed, and every change
// re-derives the User by decoding the token's payload segment. The decode
// never verifies the signature: the derived User is for display and gating
// only, while the backend re-validates the token on every request.
//
// Components that depend on the token (the remote notification store, for
// instance) subscribe with OnTokenChange instead of polling.
package session

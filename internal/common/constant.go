// Package common contains shared constants and small helpers used across
// travelrisk client components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token
// on every protected request.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value inside the Authorization header.
const BearerPrefix = "Bearer "

// Local storage keys.
const (
	TokenStorageKey        = "token"
	NotificationStorageKey = "app_notifications"
)

// BearerValue formats token as an Authorization header value.
func BearerValue(token string) string {
	return BearerPrefix + token
}

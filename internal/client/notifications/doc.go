// Package notifications keeps the signed-in user's notification list.
//
// Two interchangeable stores implement Store. LocalStore keeps the list in
// durable local storage and never talks to the network. RemoteStore mirrors
// the backend's /api/alerts collection and refetches it every time the
// session token changes.
package notifications

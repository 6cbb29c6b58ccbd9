// Package storage is the client's durable local storage: a string-keyed
// byte-value table in a local SQLite database that survives restarts.
//
// It plays the role browser localStorage plays for a web client. Two fixed
// keys are used by the rest of the client: the bearer token and, when
// notifications run in local mode, the serialized notification list.
//
// Open creates (or reuses) the database file and applies the embedded goose
// migrations. Repository is the key/value contract; SQLiteRepository is its
// only implementation and accepts anything satisfying DBTX, so it can run
// against *sql.DB or inside a *sql.Tx.
package storage

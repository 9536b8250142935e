// Package db provides the local SQLite-backed slot store that holds
// serialized application state.
package db

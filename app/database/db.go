package database

import "database/sql"

// Querier is the subset of database operations shared by *sql.DB and *sql.Tx.
// Query helpers that must run both standalone and inside a transaction take a
// Querier instead of a concrete handle.
type Querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

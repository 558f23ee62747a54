// Package postgres provides the PostgreSQL implementations of the store
// interfaces, together with the embedded schema migrations that create the
// tables they operate on.
//
// All stores accept a store.DBTX so they can run against either the
// connection pool or a caller-managed transaction.
package postgres

// Package database builds the Postgres connection pool for the quote
// writer.
package database

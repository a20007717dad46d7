// Package writer persists finished quote records.
//
// Two destinations are provided: a CSV file with one column per schema
// field, and a Postgres table storing each record as a JSONB document.
// The Postgres writer buffers and batch-inserts; both tolerate records
// arriving in any order.
package writer

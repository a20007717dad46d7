// Package model defines the domain types shared across the harvester:
// the discovered ticker identity, the fixed ~80-field quote schema, and
// the QuoteRecord handed to record writers.
package model

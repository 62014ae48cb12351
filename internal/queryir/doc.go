// Package queryir is a small query language over record entries.
//
// A query is built from predicates on single entries. The same query can be
// evaluated against an in-memory record (Match, SelectRecord, EventMatches)
// or compiled to SQL against stored records by package querysql.
//
// Validate must pass before a query reaches a SQL backend: field names are
// part of the generated SQL text, values never are.
package queryir

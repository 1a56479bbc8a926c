// Package sqlite provides SQLite-backed persistence for tech packs and
// view revisions.
//
// A single Store owns the database connection and exposes the driven
// store interfaces through wrapper types. The database lives in the user
// data directory and is created on first use; schema changes run through
// embedded migrations.
//
// The revision table is append-mostly: commits insert new rows and flip
// the previous active row, soft deletes flip flags, and nothing is ever
// physically removed, which is what makes deletion recoverable.
package sqlite

// Package postgres implements the store interfaces on PostgreSQL via the
// pgx driver. Backend error codes are mapped onto the store package's
// sentinel errors so callers never depend on driver details.
package postgres

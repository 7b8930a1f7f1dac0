// Package postgres provides PostgreSQL implementations of the store
// interfaces, using database/sql with the pgx stdlib driver. Database
// errors are mapped to the store package's sentinel errors so callers
// never depend on driver details.
package postgres

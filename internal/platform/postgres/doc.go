// Package postgres provides the PostgreSQL backend of the persistent store.
// It opens connections through the pgx database/sql driver and maps
// PostgreSQL error codes onto the store package's sentinel errors.
package postgres

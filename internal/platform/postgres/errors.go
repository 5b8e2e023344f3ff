package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/wordwise/internal/store"
)

// PostgreSQL error codes
const (
	// invalidTextRepresentationCode is raised for malformed JSON input
	invalidTextRepresentationCode = "22P02"

	// adminShutdownCode is raised when the server terminates the connection
	adminShutdownCode = "57P01"

	// cannotConnectNowCode is raised while the server is starting up
	cannotConnectNowCode = "57P03"

	// tooManyConnectionsCode is raised when the connection limit is reached
	tooManyConnectionsCode = "53300"

	// connectionExceptionClass prefixes every connection exception code
	connectionExceptionClass = "08"
)

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context for debugging.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == invalidTextRepresentationCode:
			return fmt.Errorf("%w: %v", store.ErrCorrupt, err)
		case IsUnavailable(pgErr):
			return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return err
}

// IsUnavailable reports whether pgErr signals a server that cannot serve
// requests right now.
func IsUnavailable(pgErr *pgconn.PgError) bool {
	switch pgErr.Code {
	case adminShutdownCode, cannotConnectNowCode, tooManyConnectionsCode:
		return true
	}
	return strings.HasPrefix(pgErr.Code, connectionExceptionClass)
}

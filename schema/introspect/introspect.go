// Package introspect reads column nullability from a live database. The
// extraction pipeline can consume it as an optional NullabilitySource, so
// fields whose nullability never appears in fillable or cast metadata still
// render with the optional marker.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Introspector reports which columns of a table accept NULL.
type Introspector struct {
	db      *sql.DB
	dialect dialect
}

type dialect interface {
	nullableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error)
}

// Open connects to the database named by a provider ("mysql", "postgres",
// "sqlite") and connection string, and verifies the connection.
func Open(ctx context.Context, provider, dsn string) (*Introspector, error) {
	driver, d, err := dialectFor(provider)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", provider, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", provider, err)
	}
	return &Introspector{db: db, dialect: d}, nil
}

// New wraps an existing connection; used by tests with a mock driver.
func New(db *sql.DB, provider string) (*Introspector, error) {
	_, d, err := dialectFor(provider)
	if err != nil {
		return nil, err
	}
	return &Introspector{db: db, dialect: d}, nil
}

// Close releases the connection.
func (i *Introspector) Close() error {
	return i.db.Close()
}

// NullableColumns implements schema.NullabilitySource.
func (i *Introspector) NullableColumns(table string) (map[string]bool, error) {
	return i.dialect.nullableColumns(context.Background(), i.db, table)
}

// DetectProvider guesses the provider from a connection string.
func DetectProvider(dsn string) string {
	switch {
	case strings.Contains(dsn, "mysql"):
		return "mysql"
	case strings.Contains(dsn, "sqlite"), strings.HasPrefix(dsn, "file:"):
		return "sqlite"
	default:
		return "postgres"
	}
}

// dialectFor normalizes the provider name to its sql.Open driver and
// dialect. The postgres driver registers as "postgres", not "postgresql",
// and the sqlite driver as "sqlite3".
func dialectFor(provider string) (string, dialect, error) {
	switch provider {
	case "mysql":
		return "mysql", mysqlDialect{}, nil
	case "postgres", "postgresql":
		return "postgres", postgresDialect{}, nil
	case "sqlite", "sqlite3":
		return "sqlite3", sqliteDialect{}, nil
	default:
		return "", nil, fmt.Errorf("unsupported provider %q", provider)
	}
}

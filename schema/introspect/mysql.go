package introspect

import (
	"context"
	"database/sql"
	"fmt"
)

type mysqlDialect struct{}

func (mysqlDialect) nullableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	query := `
		SELECT
			column_name,
			is_nullable
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns for %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name, isNullable string
		if err := rows.Scan(&name, &isNullable); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns[name] = isNullable == "YES"
	}
	return columns, rows.Err()
}

package introspect

import (
	"context"
	"database/sql"
	"fmt"
)

type sqliteDialect struct{}

func (sqliteDialect) nullableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns for %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid, notNull, isPk int
		var name, colType string
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &isPk); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns[name] = notNull == 0
	}
	return columns, rows.Err()
}

package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill-dashboard/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

const columnsQuery = `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`

// RequireColumns fails with ErrSchemaMismatch naming every wanted column
// the table lacks.
func RequireColumns(ctx context.Context, db database.DB, table string, want ...string) error {
	if table == "" {
		return errors.New("empty table name")
	}

	rows, err := db.Query(ctx, columnsQuery, table)
	if err != nil {
		return err
	}
	defer rows.Close()

	have := make(map[string]bool, len(want))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range want {
		if !have[col] {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

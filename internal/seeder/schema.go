package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"jobboard/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// SchemaSeeder verifies that the tables written by later seeders carry the
// columns they need. It writes nothing.
type SchemaSeeder struct {
	DB     database.DB
	Tables map[string][]string
}

func DefaultSchema(db database.DB) SchemaSeeder {
	return SchemaSeeder{
		DB: db,
		Tables: map[string][]string{
			"users": {"id", "email", "display_name", "password_hash", "roles", "created_at"},
			"jobs": {
				"id", "created", "company", "title", "description", "requirement",
				"hourly_wage", "state", "contact_email", "user_id",
			},
		},
	}
}

func (SchemaSeeder) Name() string { return "schema" }

func (s SchemaSeeder) Run(ctx context.Context) ([]Result, error) {
	tables := make([]string, 0, len(s.Tables))
	for t := range s.Tables {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	for _, t := range tables {
		if err := EnsureTableColumns(ctx, s.DB, t, s.Tables[t]...); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate applies the embedded schema. Every statement is idempotent, so it is
// safe to run on each deploy.
func Migrate(ctx context.Context, db Querier) error {
	// no arguments: pgx sends this over the simple protocol, which accepts multiple statements
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

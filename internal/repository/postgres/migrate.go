package postgres

import (
	"context"
	"database/sql"
	_ "embed"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return errFailedApplySchema(err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return errFailedPingDatabase(err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errFailedApplySchema(err)
	}
	return nil
}

// Schema returns the DDL applied by Migrate.
func Schema() string {
	return schema
}

package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upMediaInsertionOrder, downMediaInsertionOrder)
}

// Postgres has no rowid, so media gets an explicit sequence to read variants
// back in the order they were inserted. SQLite uses rowid and needs nothing.
func upMediaInsertionOrder(ctx context.Context, tx *sql.Tx) error {
	if dialect != goose.DialectPostgres {
		return nil
	}
	_, err := tx.ExecContext(ctx, `ALTER TABLE media ADD COLUMN IF NOT EXISTS seq BIGSERIAL`)
	return err
}

func downMediaInsertionOrder(ctx context.Context, tx *sql.Tx) error {
	if dialect != goose.DialectPostgres {
		return nil
	}
	_, err := tx.ExecContext(ctx, `ALTER TABLE media DROP COLUMN IF EXISTS seq`)
	return err
}

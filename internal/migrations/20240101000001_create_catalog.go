package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCatalog, downCreateCatalog)
}

func upCreateCatalog(ctx context.Context, tx *sql.Tx) error {
	autoID := "INTEGER PRIMARY KEY AUTOINCREMENT"
	bitrate := "INTEGER"
	if dialect == goose.DialectPostgres {
		autoID = "BIGSERIAL PRIMARY KEY"
		bitrate = "BIGINT"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS post (
			id TEXT NOT NULL PRIMARY KEY,
			account_username TEXT NOT NULL,
			text TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS media (
			id TEXT NOT NULL,
			url TEXT NOT NULL,
			alt_text TEXT,
			type TEXT,
			bitrate ` + bitrate + `,
			post_id TEXT NOT NULL REFERENCES post (id),
			UNIQUE (id, bitrate)
		)`,
		`CREATE INDEX IF NOT EXISTS media_post_id_idx ON media (post_id)`,
		`CREATE TABLE IF NOT EXISTS likes (
			id ` + autoID + `,
			post_id TEXT NOT NULL REFERENCES post (id)
		)`,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			id ` + autoID + `,
			post_id TEXT NOT NULL REFERENCES post (id)
		)`,
		`CREATE TABLE IF NOT EXISTS lists (
			list_name TEXT NOT NULL,
			post_id TEXT NOT NULL REFERENCES post (id),
			PRIMARY KEY (list_name, post_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func downCreateCatalog(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"lists", "bookmarks", "likes", "media", "post"} {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return err
		}
	}
	return nil
}

package testsupport

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/orgball2608/harrow-downloader/internal/db"
	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/pkg/config"
)

// MustOpenCatalog opens a migrated sqlite catalog in a temp dir and
// registers cleanup.
func MustOpenCatalog(t testing.TB) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "db.sqlite"))
	if err != nil {
		t.Fatalf("db.OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})

	if _, err := db.Migrate(context.Background(), conn, config.DriverSQLite); err != nil {
		t.Fatalf("db.Migrate: %v", err)
	}
	return conn
}

// InsertPost adds a post. An empty text is stored as NULL.
func InsertPost(t testing.TB, conn *sql.DB, post domain.Post) {
	t.Helper()

	var text any
	if post.Text != "" {
		text = post.Text
	}
	mustExec(t, conn, "INSERT INTO post (id, account_username, text) VALUES (?, ?, ?)", post.ID, post.AccountUsername, text)
}

// InsertMedia adds a media variant. Empty type and alt text are stored as NULL.
func InsertMedia(t testing.TB, conn *sql.DB, m domain.MediaVariant) {
	t.Helper()

	var typ, alt, bitrate any
	if m.Type != "" {
		typ = m.Type
	}
	if m.AltText != "" {
		alt = m.AltText
	}
	if m.Bitrate != nil {
		bitrate = *m.Bitrate
	}
	mustExec(t, conn, "INSERT INTO media (id, url, alt_text, type, bitrate, post_id) VALUES (?, ?, ?, ?, ?, ?)",
		m.ID, m.URL, alt, typ, bitrate, m.PostID)
}

func InsertLike(t testing.TB, conn *sql.DB, postID string) {
	t.Helper()
	mustExec(t, conn, "INSERT INTO likes (post_id) VALUES (?)", postID)
}

func InsertBookmark(t testing.TB, conn *sql.DB, postID string) {
	t.Helper()
	mustExec(t, conn, "INSERT INTO bookmarks (post_id) VALUES (?)", postID)
}

func InsertListMembership(t testing.TB, conn *sql.DB, listName, postID string) {
	t.Helper()
	mustExec(t, conn, "INSERT INTO lists (list_name, post_id) VALUES (?, ?)", listName, postID)
}

func mustExec(t testing.TB, conn *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := conn.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

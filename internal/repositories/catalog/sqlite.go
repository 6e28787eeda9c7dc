package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/repositories"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
)

// SQLite reads the catalog from the local sqlite database written by the
// ingester.
type SQLite struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSQLite(db *sql.DB, logger logger.Logger) *SQLite {
	return &SQLite{
		db:     db,
		logger: logger.WithComponent("CatalogRepo"),
	}
}

var _ Repository = (*SQLite)(nil)

func (s *SQLite) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := sqlList(ctx, s.db, postsQuery(repositories.SqliteBuilder), scanPost)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *SQLite) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	query, args, err := postQuery(repositories.SqliteBuilder, id).ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	post, err := scanPost(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	return post, nil
}

func (s *SQLite) ListMediaForPost(ctx context.Context, postID string) ([]*domain.MediaVariant, error) {
	media, err := sqlList(ctx, s.db, mediaQuery(repositories.SqliteBuilder, sqliteMediaOrder, postID), scanMedia)
	if err != nil {
		return nil, fmt.Errorf("failed to list media for post %s: %w", postID, err)
	}
	return media, nil
}

func (s *SQLite) ListLikes(ctx context.Context) ([]*domain.Like, error) {
	likes, err := sqlList(ctx, s.db, likesQuery(repositories.SqliteBuilder), scanLike)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return likes, nil
}

func (s *SQLite) ListBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	bookmarks, err := sqlList(ctx, s.db, bookmarksQuery(repositories.SqliteBuilder), scanBookmark)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (s *SQLite) ListListMemberships(ctx context.Context) ([]*domain.ListMembership, error) {
	lists, err := sqlList(ctx, s.db, listsQuery(repositories.SqliteBuilder), scanListMembership)
	if err != nil {
		return nil, fmt.Errorf("failed to list list memberships: %w", err)
	}
	return lists, nil
}

func sqlList[T any](ctx context.Context, db *sql.DB, b sq.SelectBuilder, scan func(scanner) (T, error)) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows, scan)
}

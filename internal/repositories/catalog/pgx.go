package catalog

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/repositories"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("CatalogRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := pgxList(ctx, p.pg, postsQuery(repositories.SqBuilder), scanPost)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (p *Pgx) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	query, args, err := postQuery(repositories.SqBuilder, id).ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	post, err := scanPost(p.pg.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	return post, nil
}

func (p *Pgx) ListMediaForPost(ctx context.Context, postID string) ([]*domain.MediaVariant, error) {
	media, err := pgxList(ctx, p.pg, mediaQuery(repositories.SqBuilder, pgMediaOrder, postID), scanMedia)
	if err != nil {
		return nil, fmt.Errorf("failed to list media for post %s: %w", postID, err)
	}
	return media, nil
}

func (p *Pgx) ListLikes(ctx context.Context) ([]*domain.Like, error) {
	likes, err := pgxList(ctx, p.pg, likesQuery(repositories.SqBuilder), scanLike)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return likes, nil
}

func (p *Pgx) ListBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	bookmarks, err := pgxList(ctx, p.pg, bookmarksQuery(repositories.SqBuilder), scanBookmark)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (p *Pgx) ListListMemberships(ctx context.Context) ([]*domain.ListMembership, error) {
	lists, err := pgxList(ctx, p.pg, listsQuery(repositories.SqBuilder), scanListMembership)
	if err != nil {
		return nil, fmt.Errorf("failed to list list memberships: %w", err)
	}
	return lists, nil
}

func pgxList[T any](ctx context.Context, pool *pgxpool.Pool, b sq.SelectBuilder, scan func(scanner) (T, error)) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows, scan)
}

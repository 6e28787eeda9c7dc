package catalog

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/orgball2608/harrow-downloader/internal/domain"
)

// Both drivers share these builders; only the placeholder format differs.

func postsQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select("id", "account_username", "text").
		From("post").
		OrderBy("id")
}

func postQuery(b sq.StatementBuilderType, id string) sq.SelectBuilder {
	return b.Select("id", "account_username", "text").
		From("post").
		Where(sq.Eq{"id": id})
}

// Media rows come back in insertion order. Each driver names the column that
// records it.
const (
	sqliteMediaOrder = "rowid"
	pgMediaOrder     = "seq"
)

func mediaQuery(b sq.StatementBuilderType, order, postID string) sq.SelectBuilder {
	return b.Select("id", "post_id", "url", "alt_text", "type", "bitrate").
		From("media").
		Where(sq.Eq{"post_id": postID}).
		OrderBy(order)
}

func likesQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select("id", "post_id").From("likes").OrderBy("id")
}

func bookmarksQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select("id", "post_id").From("bookmarks").OrderBy("id")
}

func listsQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select("list_name", "post_id").From("lists").OrderBy("list_name", "post_id")
}

type scanner interface {
	Scan(dest ...any) error
}

type rowIter interface {
	scanner
	Next() bool
	Err() error
}

func collect[T any](r rowIter, scan func(scanner) (T, error)) ([]T, error) {
	var items []T
	for r.Next() {
		item, err := scan(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanPost(s scanner) (*domain.Post, error) {
	var (
		post domain.Post
		text sql.NullString
	)
	if err := s.Scan(&post.ID, &post.AccountUsername, &text); err != nil {
		return nil, err
	}
	post.Text = text.String
	return &post, nil
}

func scanMedia(s scanner) (*domain.MediaVariant, error) {
	var (
		media   domain.MediaVariant
		altText sql.NullString
		typ     sql.NullString
		bitrate sql.NullInt64
	)
	if err := s.Scan(&media.ID, &media.PostID, &media.URL, &altText, &typ, &bitrate); err != nil {
		return nil, err
	}
	media.AltText = altText.String
	media.Type = typ.String
	if bitrate.Valid {
		v := bitrate.Int64
		media.Bitrate = &v
	}
	return &media, nil
}

func scanLike(s scanner) (*domain.Like, error) {
	var like domain.Like
	if err := s.Scan(&like.ID, &like.PostID); err != nil {
		return nil, err
	}
	return &like, nil
}

func scanBookmark(s scanner) (*domain.Bookmark, error) {
	var bookmark domain.Bookmark
	if err := s.Scan(&bookmark.ID, &bookmark.PostID); err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func scanListMembership(s scanner) (*domain.ListMembership, error) {
	var m domain.ListMembership
	if err := s.Scan(&m.ListName, &m.PostID); err != nil {
		return nil, err
	}
	return &m, nil
}

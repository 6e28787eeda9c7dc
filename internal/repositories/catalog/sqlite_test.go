package catalog

import (
	"context"
	"testing"

	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/repositories"
	"github.com/orgball2608/harrow-downloader/internal/testsupport"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitrate(v int64) *int64 {
	return &v
}

func TestSQLite_ReadContract(t *testing.T) {
	conn := testsupport.MustOpenCatalog(t)
	testsupport.InsertPost(t, conn, domain.Post{ID: "p2", AccountUsername: "bob"})
	testsupport.InsertPost(t, conn, domain.Post{ID: "p1", AccountUsername: "alice", Text: "hi"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "m2", PostID: "p1", URL: "https://pbs.example.com/y.jpg", Type: "photo"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "m1", PostID: "p1", URL: "https://pbs.example.com/x.jpg", AltText: "a cat"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "v", PostID: "p2", URL: "https://video.example.com/hi.mp4", Type: "video", Bitrate: bitrate(832000)})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "v", PostID: "p2", URL: "https://video.example.com/lo.mp4", Type: "video", Bitrate: bitrate(256000)})
	testsupport.InsertLike(t, conn, "p2")
	testsupport.InsertLike(t, conn, "p1")
	testsupport.InsertBookmark(t, conn, "p1")
	testsupport.InsertListMembership(t, conn, "art", "p2")
	testsupport.InsertListMembership(t, conn, "art", "p1")

	repo := NewSQLite(conn, logger.Nop())
	ctx := context.Background()

	posts, err := repo.ListPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Post{
		{ID: "p1", AccountUsername: "alice", Text: "hi"},
		{ID: "p2", AccountUsername: "bob"},
	}, posts)

	post, err := repo.GetPost(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "alice", post.AccountUsername)

	media, err := repo.ListMediaForPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, "m2", media[0].ID)
	assert.Equal(t, "photo", media[0].Type)
	assert.Equal(t, "m1", media[1].ID)
	assert.Equal(t, "a cat", media[1].AltText)
	assert.Empty(t, media[1].Type)
	assert.Nil(t, media[1].Bitrate)

	videos, err := repo.ListMediaForPost(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, int64(832000), *videos[0].Bitrate)
	assert.Equal(t, int64(256000), *videos[1].Bitrate)

	likes, err := repo.ListLikes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Like{{ID: 1, PostID: "p2"}, {ID: 2, PostID: "p1"}}, likes)

	bookmarks, err := repo.ListBookmarks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Bookmark{{ID: 1, PostID: "p1"}}, bookmarks)

	lists, err := repo.ListListMemberships(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.ListMembership{{ListName: "art", PostID: "p1"}, {ListName: "art", PostID: "p2"}}, lists)
}

func TestSQLite_GetPostNotFound(t *testing.T) {
	repo := NewSQLite(testsupport.MustOpenCatalog(t), logger.Nop())

	_, err := repo.GetPost(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestSQLite_EmptyCatalog(t *testing.T) {
	repo := NewSQLite(testsupport.MustOpenCatalog(t), logger.Nop())
	ctx := context.Background()

	posts, err := repo.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	media, err := repo.ListMediaForPost(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, media)
}

func TestQueries_Placeholders(t *testing.T) {
	query, args, err := mediaQuery(repositories.SqBuilder, pgMediaOrder, "p1").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, post_id, url, alt_text, type, bitrate FROM media WHERE post_id = $1 ORDER BY seq", query)
	assert.Equal(t, []any{"p1"}, args)

	query, args, err = mediaQuery(repositories.SqliteBuilder, sqliteMediaOrder, "p1").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, post_id, url, alt_text, type, bitrate FROM media WHERE post_id = ? ORDER BY rowid", query)
	assert.Equal(t, []any{"p1"}, args)
}

func TestSQLite_MediaInsertionOrder(t *testing.T) {
	conn := testsupport.MustOpenCatalog(t)
	testsupport.InsertPost(t, conn, domain.Post{ID: "p1", AccountUsername: "alice"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "v", PostID: "p1", URL: "https://video.example.com/mid.mp4", Type: "video", Bitrate: bitrate(512000)})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "v", PostID: "p1", URL: "https://video.example.com/hls.m3u8", Type: "video"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "v", PostID: "p1", URL: "https://video.example.com/hi.mp4", Type: "video", Bitrate: bitrate(2176000)})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "a", PostID: "p1", URL: "https://video.example.com/a.mp4", Type: "video", Bitrate: bitrate(256000)})

	media, err := NewSQLite(conn, logger.Nop()).ListMediaForPost(context.Background(), "p1")
	require.NoError(t, err)

	urls := make([]string, 0, len(media))
	for _, m := range media {
		urls = append(urls, m.URL)
	}
	assert.Equal(t, []string{
		"https://video.example.com/mid.mp4",
		"https://video.example.com/hls.m3u8",
		"https://video.example.com/hi.mp4",
		"https://video.example.com/a.mp4",
	}, urls)
}

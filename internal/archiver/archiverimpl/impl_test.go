package archiverimpl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/fetcher"
	"github.com/orgball2608/harrow-downloader/internal/fetcher/fetcherimpl"
	mock_fetcher "github.com/orgball2608/harrow-downloader/internal/fetcher/mocks"
	"github.com/orgball2608/harrow-downloader/internal/repositories/catalog"
	mock_catalog "github.com/orgball2608/harrow-downloader/internal/repositories/catalog/mocks"
	"github.com/orgball2608/harrow-downloader/internal/testsupport"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	pkgerrors "github.com/orgball2608/harrow-downloader/pkg/errors"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func bitrate(v int64) *int64 {
	return &v
}

func testConfig(workers int) *config.Config {
	cfg := &config.Config{}
	cfg.Archive.Workers = workers
	cfg.Archive.FetchTimeout = 5 * time.Second
	return cfg
}

// mediaServer serves every path under /media/ with a body derived from the
// path and counts requests.
func mediaServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !strings.HasPrefix(r.URL.Path, "/media/") || strings.Contains(r.URL.Path, "missing") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("content of " + r.URL.Path))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newArchiver(t *testing.T, repo catalog.Repository, f fetcher.Client, cfg *config.Config) *ArchiverImpl {
	t.Helper()
	return New(Opts{Catalog: repo, Fetcher: f, Logger: logger.Nop(), Config: cfg})
}

func realFetcher(cfg *config.Config) fetcher.Client {
	return fetcherimpl.New(fetcherimpl.Opts{Config: cfg, Logger: logger.Nop()})
}

func TestRun_PhotoPostScenario(t *testing.T) {
	var hits atomic.Int32
	srv := mediaServer(t, &hits)
	conn := testsupport.MustOpenCatalog(t)
	testsupport.InsertPost(t, conn, domain.Post{ID: "p1", AccountUsername: "alice", Text: "hi"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "1", PostID: "p1", Type: "photo", URL: srv.URL + "/media/x.jpg"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "2", PostID: "p1", Type: "photo", URL: srv.URL + "/media/y.jpg"})

	cfg := testConfig(1)
	dir := t.TempDir()
	a := newArchiver(t, catalog.NewSQLite(conn, logger.Nop()), realFetcher(cfg), cfg)

	report, err := a.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Posts)
	assert.Equal(t, 2, report.Downloaded)
	assert.Equal(t, 1, report.MetadataWritten)
	assert.Zero(t, report.Failed())
	assert.FileExists(t, filepath.Join(dir, "x.jpg"))
	assert.FileExists(t, filepath.Join(dir, "y.jpg"))

	meta, err := os.ReadFile(filepath.Join(dir, "x.jpg__y.jpg.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(meta), "post id: p1"))
	assert.Contains(t, string(meta), "files: x.jpg, y.jpg")
}

func TestRun_SecondRunIsIdempotent(t *testing.T) {
	var hits atomic.Int32
	srv := mediaServer(t, &hits)
	conn := testsupport.MustOpenCatalog(t)
	testsupport.InsertPost(t, conn, domain.Post{ID: "p1", AccountUsername: "alice"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "1", PostID: "p1", Type: "photo", URL: srv.URL + "/media/x.jpg"})
	testsupport.InsertPost(t, conn, domain.Post{ID: "p2", AccountUsername: "bob"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "v", PostID: "p2", Type: "video", Bitrate: bitrate(64), URL: srv.URL + "/media/low.mp4"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "v", PostID: "p2", Type: "video", Bitrate: bitrate(320), URL: srv.URL + "/media/high.mp4"})

	cfg := testConfig(1)
	dir := t.TempDir()
	a := newArchiver(t, catalog.NewSQLite(conn, logger.Nop()), realFetcher(cfg), cfg)

	_, err := a.Run(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, int32(2), hits.Load())
	before, err := os.ReadFile(filepath.Join(dir, "high.mp4"))
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "low.mp4"))

	report, err := a.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load(), "second run must not fetch")
	assert.Equal(t, 0, report.Downloaded)
	assert.Equal(t, 2, report.Existing)
	after, err := os.ReadFile(filepath.Join(dir, "high.mp4"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_NonMediaPostProducesNothing(t *testing.T) {
	conn := testsupport.MustOpenCatalog(t)
	testsupport.InsertPost(t, conn, domain.Post{ID: "p1", AccountUsername: "alice", Text: "just text"})

	cfg := testConfig(1)
	dir := t.TempDir()
	ctrl := gomock.NewController(t)
	f := mock_fetcher.NewMockClient(ctrl)

	report, err := newArchiver(t, catalog.NewSQLite(conn, logger.Nop()), f, cfg).Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.NonMedia)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_EmptyCatalog(t *testing.T) {
	cfg := testConfig(1)
	ctrl := gomock.NewController(t)
	repo := mock_catalog.NewMockRepository(ctrl)
	repo.EXPECT().ListPosts(gomock.Any()).Return(nil, nil)

	report, err := newArchiver(t, repo, mock_fetcher.NewMockClient(ctrl), cfg).Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, report.Posts)
}

func TestRun_ListPostsFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_catalog.NewMockRepository(ctrl)
	repo.EXPECT().ListPosts(gomock.Any()).Return(nil, errors.New("database is locked"))

	_, err := newArchiver(t, repo, mock_fetcher.NewMockClient(ctrl), testConfig(1)).Run(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "database is locked")
}

func TestRun_FailuresAreIsolatedPerPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_catalog.NewMockRepository(ctrl)
	f := mock_fetcher.NewMockClient(ctrl)
	dir := t.TempDir()

	p1 := &domain.Post{ID: "p1", AccountUsername: "alice"}
	p2 := &domain.Post{ID: "p2", AccountUsername: "bob"}
	p3 := &domain.Post{ID: "p3", AccountUsername: "carol"}
	a1 := &domain.MediaVariant{ID: "a1", PostID: "p1", Type: "photo", URL: "https://pbs.example.com/a1.jpg"}
	a2 := &domain.MediaVariant{ID: "a2", PostID: "p1", Type: "photo", URL: "https://pbs.example.com/a2.jpg"}
	bad := &domain.MediaVariant{ID: "a3", PostID: "p1", Type: "photo", URL: "https://pbs.example.com/"}
	c1 := &domain.MediaVariant{ID: "c1", PostID: "p3", Type: "photo", URL: "https://pbs.example.com/c1.jpg"}

	repo.EXPECT().ListPosts(gomock.Any()).Return([]*domain.Post{p1, p2, p3}, nil)
	repo.EXPECT().ListMediaForPost(gomock.Any(), "p1").Return([]*domain.MediaVariant{a1, bad, a2}, nil)
	repo.EXPECT().ListMediaForPost(gomock.Any(), "p2").Return(nil, errors.New("malformed row"))
	repo.EXPECT().ListMediaForPost(gomock.Any(), "p3").Return([]*domain.MediaVariant{c1}, nil)

	gomock.InOrder(
		f.EXPECT().Fetch(gomock.Any(), a1, dir).Return(fetcher.Outcome{}, pkgerrors.WrapKind(errors.New("503"), pkgerrors.ErrNetwork, "fetch a1")),
		f.EXPECT().Fetch(gomock.Any(), a2, dir).Return(fetcher.Outcome{Filename: "a2.jpg", Status: fetcher.StatusDownloaded, Bytes: 5}, nil),
		f.EXPECT().Fetch(gomock.Any(), c1, dir).Return(fetcher.Outcome{Filename: "c1.jpg", Status: fetcher.StatusExisting}, nil),
	)

	report, err := newArchiver(t, repo, f, testConfig(1)).Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Downloaded)
	assert.Equal(t, 1, report.Existing)
	assert.Equal(t, int64(5), report.Bytes)
	assert.Equal(t, 2, report.MetadataWritten)
	require.Len(t, report.Failures, 3)
	assert.ErrorIs(t, report.Failures[0].Err, pkgerrors.ErrNoFilename)
	assert.Equal(t, "a1.jpg", report.Failures[1].Filename)
	assert.ErrorIs(t, report.Failures[1].Err, pkgerrors.ErrNetwork)
	assert.Equal(t, "p2", report.Failures[2].PostID)

	// metadata lists every resolved filename, fetched or not
	meta, err := os.ReadFile(filepath.Join(dir, "a1.jpg__a2.jpg.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), "files: a1.jpg, a2.jpg")
	assert.FileExists(t, filepath.Join(dir, "c1.jpg.txt"))
}

func TestRun_SkipMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_catalog.NewMockRepository(ctrl)
	f := mock_fetcher.NewMockClient(ctrl)
	dir := t.TempDir()
	v := &domain.MediaVariant{ID: "1", PostID: "p1", URL: "https://pbs.example.com/x.jpg"}

	repo.EXPECT().ListPosts(gomock.Any()).Return([]*domain.Post{{ID: "p1", AccountUsername: "alice"}}, nil)
	repo.EXPECT().ListMediaForPost(gomock.Any(), "p1").Return([]*domain.MediaVariant{v}, nil)
	f.EXPECT().Fetch(gomock.Any(), v, dir).Return(fetcher.Outcome{Filename: "x.jpg", Status: fetcher.StatusExisting}, nil)

	cfg := testConfig(1)
	cfg.Archive.SkipMetadata = true

	report, err := newArchiver(t, repo, f, cfg).Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Zero(t, report.MetadataWritten)
	assert.NoFileExists(t, filepath.Join(dir, "x.jpg.txt"))
}

func TestRun_CancelledStopsAtPostBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_catalog.NewMockRepository(ctrl)
	f := mock_fetcher.NewMockClient(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	dir := t.TempDir()
	v := &domain.MediaVariant{ID: "1", PostID: "p1", URL: "https://pbs.example.com/x.jpg"}

	repo.EXPECT().ListPosts(gomock.Any()).Return([]*domain.Post{
		{ID: "p1", AccountUsername: "alice"},
		{ID: "p2", AccountUsername: "alice"},
	}, nil)
	repo.EXPECT().ListMediaForPost(gomock.Any(), "p1").Return([]*domain.MediaVariant{v}, nil)
	f.EXPECT().Fetch(gomock.Any(), v, dir).DoAndReturn(func(context.Context, *domain.MediaVariant, string) (fetcher.Outcome, error) {
		cancel()
		return fetcher.Outcome{Filename: "x.jpg", Status: fetcher.StatusDownloaded}, nil
	})

	report, err := newArchiver(t, repo, f, testConfig(1)).Run(ctx, dir)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, report.Downloaded)
	assert.Equal(t, 1, report.MetadataWritten, "the post in flight completes")
}

func TestRun_WorkerPool(t *testing.T) {
	var hits atomic.Int32
	srv := mediaServer(t, &hits)
	conn := testsupport.MustOpenCatalog(t)
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6"} {
		testsupport.InsertPost(t, conn, domain.Post{ID: id, AccountUsername: "alice"})
		testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: id + "m", PostID: id, Type: "photo", URL: srv.URL + "/media/" + id + ".jpg"})
	}
	testsupport.InsertPost(t, conn, domain.Post{ID: "p7", AccountUsername: "bob"})
	testsupport.InsertMedia(t, conn, domain.MediaVariant{ID: "p7m", PostID: "p7", Type: "photo", URL: srv.URL + "/media/missing.jpg"})

	cfg := testConfig(3)
	dir := t.TempDir()

	report, err := newArchiver(t, catalog.NewSQLite(conn, logger.Nop()), realFetcher(cfg), cfg).Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 6, report.Downloaded)
	assert.Equal(t, 7, report.MetadataWritten)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "p7", report.Failures[0].PostID)
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6"} {
		assert.FileExists(t, filepath.Join(dir, id+".jpg"))
		assert.FileExists(t, filepath.Join(dir, id+".jpg.txt"))
	}
}

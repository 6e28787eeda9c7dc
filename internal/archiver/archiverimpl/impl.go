package archiverimpl

import (
	"context"
	"fmt"
	"sync"

	"github.com/orgball2608/harrow-downloader/internal/archiver"
	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/fetcher"
	"github.com/orgball2608/harrow-downloader/internal/repositories/catalog"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Catalog catalog.Repository
	Fetcher fetcher.Client
	Logger  logger.Logger
	Config  *config.Config
}

type ArchiverImpl struct {
	Catalog catalog.Repository
	Fetcher fetcher.Client
	Logger  logger.Logger
	Config  *config.Config
}

func New(opts Opts) *ArchiverImpl {
	return &ArchiverImpl{
		Catalog: opts.Catalog,
		Fetcher: opts.Fetcher,
		Logger:  opts.Logger.WithComponent("Archiver"),
		Config:  opts.Config,
	}
}

var _ archiver.Client = (*ArchiverImpl)(nil)

func (a *ArchiverImpl) Run(ctx context.Context, canonicalDir string) (*archiver.Report, error) {
	posts, err := a.Catalog.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	rec := &recorder{report: &archiver.Report{Posts: len(posts)}}
	a.Logger.Info("Starting archive run", "posts", len(posts), "workers", a.Config.Archive.Workers)

	if a.Config.Archive.Workers > 1 {
		if err := a.runPool(ctx, posts, canonicalDir, rec); err != nil {
			return rec.report, err
		}
	} else {
		for _, post := range posts {
			if ctx.Err() != nil {
				break
			}
			a.archivePost(ctx, post, canonicalDir, rec)
		}
	}

	report := rec.report
	a.Logger.Info("Archive run finished",
		"posts", report.Posts,
		"non_media", report.NonMedia,
		"downloaded", report.Downloaded,
		"existing", report.Existing,
		"metadata", report.MetadataWritten,
		"failed", report.Failed(),
	)

	if err := ctx.Err(); err != nil {
		a.Logger.Warn("Archive run interrupted", "error", err)
		return report, err
	}
	return report, nil
}

func (a *ArchiverImpl) runPool(ctx context.Context, posts []*domain.Post, canonicalDir string, rec *recorder) error {
	pool, err := ants.NewPool(a.Config.Archive.Workers, ants.WithPreAlloc(true))
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, post := range posts {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			a.archivePost(ctx, post, canonicalDir, rec)
		})
		if err != nil {
			wg.Done()
			a.Logger.Error("Failed to submit post", "post_id", post.ID, "error", err)
			rec.fail(post.ID, "", err)
		}
	}
	wg.Wait()
	return nil
}

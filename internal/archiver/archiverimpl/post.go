package archiverimpl

import (
	"context"
	"sync"

	"github.com/orgball2608/harrow-downloader/internal/archiver"
	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/fetcher"
	"github.com/orgball2608/harrow-downloader/internal/metadata"
	"github.com/orgball2608/harrow-downloader/internal/selector"
	"github.com/orgball2608/harrow-downloader/pkg/errors"
)

// archivePost runs selection, fetching and the metadata write for one post.
// Nothing that goes wrong here escapes the post.
func (a *ArchiverImpl) archivePost(ctx context.Context, post *domain.Post, canonicalDir string, rec *recorder) {
	log := a.Logger.With("post_id", post.ID)

	variants, err := a.Catalog.ListMediaForPost(ctx, post.ID)
	if err != nil {
		log.Error("Failed to load media", "error", err)
		rec.fail(post.ID, "", err)
		return
	}
	if len(variants) == 0 {
		log.Debug("Post has no media, skipping")
		rec.nonMedia()
		return
	}

	log.Debug("Downloading post", "variants", len(variants))
	plan := selector.NewPlan(variants)

	for _, u := range plan.Unresolved {
		log.Warn("Skipping media with unusable url", "media_id", u.Variant.ID, "url", u.Variant.URL, "code", errors.GetCode(u.Err), "error", u.Err)
		rec.fail(post.ID, "", u.Err)
	}

	for _, item := range plan.Items {
		outcome, err := a.Fetcher.Fetch(ctx, item.Variant, canonicalDir)
		if err != nil {
			log.Error("Failed to fetch media", "filename", item.Filename, "url", item.Variant.URL, "code", errors.GetCode(err), "error", err)
			rec.fail(post.ID, item.Filename, err)
			continue
		}
		rec.fetched(outcome)
	}

	if len(plan.Items) == 0 {
		log.Warn("No media filename resolved, skipping metadata")
		return
	}
	if a.Config.Archive.SkipMetadata {
		return
	}

	name, err := metadata.Write(canonicalDir, post, plan.Filenames())
	if err != nil {
		log.Error("Failed to write metadata", "filename", plan.MetadataFilename(), "error", err)
		rec.fail(post.ID, plan.MetadataFilename(), err)
		return
	}
	log.Debug("Wrote metadata", "filename", name)
	rec.metadata()
}

type recorder struct {
	mu     sync.Mutex
	report *archiver.Report
}

func (r *recorder) fail(postID, filename string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Failures = append(r.report.Failures, archiver.Failure{PostID: postID, Filename: filename, Err: err})
}

func (r *recorder) nonMedia() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.NonMedia++
}

func (r *recorder) fetched(outcome fetcher.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch outcome.Status {
	case fetcher.StatusDownloaded:
		r.report.Downloaded++
		r.report.Bytes += outcome.Bytes
	case fetcher.StatusExisting:
		r.report.Existing++
	}
}

func (r *recorder) metadata() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.MetadataWritten++
}

package viewsimpl

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/selector"
	"github.com/orgball2608/harrow-downloader/pkg/errors"
)

// mediaFor loads the variants of a post, recording catalog failures.
// A nil result with ok set means the post has no media.
func (g *generation) mediaFor(ctx context.Context, postID string) (variants []*domain.MediaVariant, ok bool) {
	variants, err := g.Catalog.ListMediaForPost(ctx, postID)
	if err != nil {
		g.log.Error("Failed to load media", "post_id", postID, "error", err)
		g.fail(postID, err)
		return nil, false
	}
	if len(variants) == 0 {
		g.stats.NonMedia++
	}
	return variants, true
}

// linkPost links every file the post contributed to canonical storage into
// dir, under the same names the archive run used.
func (g *generation) linkPost(postID string, variants []*domain.MediaVariant, dir string) {
	plan := selector.NewPlan(variants)
	for _, u := range plan.Unresolved {
		g.log.Warn("Skipping media with unusable url", "post_id", postID, "media_id", u.Variant.ID, "error", u.Err)
	}

	for _, name := range plan.AllFilenames() {
		target := filepath.Join(g.canonical, name)
		if _, err := os.Stat(target); err != nil {
			g.log.Warn("File missing from canonical storage, not linking", "post_id", postID, "filename", name)
			g.stats.Missing++
			continue
		}

		link := filepath.Join(dir, name)
		if err := os.Symlink(target, link); err != nil {
			if errors.Is(err, fs.ErrExist) {
				err = errors.WrapKind(err, errors.ErrAlreadyExists, "symlink "+link)
				g.log.Error("Symlink already exists, derived filenames collide", "post_id", postID, "link", link, "target", target)
			} else {
				err = errors.WrapKind(err, errors.ErrWrite, "symlink "+link)
				g.log.Error("Failed to create symlink", "post_id", postID, "link", link, "error", err)
			}
			g.fail(postID, err)
			continue
		}
		g.stats.Links++
	}
	g.stats.Entries++
}

// mkdirEntry creates one per-account or per-list directory under the view
// root. Names that would leave the view root are rejected.
func (g *generation) mkdirEntry(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return "", errors.WrapKind(nil, errors.ErrWrite, "invalid directory name "+name)
	}

	dir := filepath.Join(g.viewRoot, name)
	if err := os.Mkdir(dir, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return "", errors.WrapKind(err, errors.ErrWrite, "create "+dir)
	}
	return dir, nil
}

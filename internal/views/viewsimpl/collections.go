package viewsimpl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/repositories/catalog"
	"github.com/orgball2608/harrow-downloader/pkg/errors"
)

// entry is one like, bookmark or list membership pointing at a post.
type entry struct {
	label  string
	postID string
}

func (g *generation) populateLikes(ctx context.Context) error {
	likes, err := g.Catalog.ListLikes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list likes: %w", err)
	}

	entries := make([]entry, 0, len(likes))
	for _, like := range likes {
		entries = append(entries, entry{label: "like " + strconv.FormatInt(like.ID, 10), postID: like.PostID})
	}
	g.populateFlat(ctx, entries, g.viewRoot)
	return nil
}

func (g *generation) populateBookmarks(ctx context.Context) error {
	bookmarks, err := g.Catalog.ListBookmarks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookmarks: %w", err)
	}

	entries := make([]entry, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		entries = append(entries, entry{label: "bookmark " + strconv.FormatInt(bookmark.ID, 10), postID: bookmark.PostID})
	}
	g.populateFlat(ctx, entries, g.viewRoot)
	return nil
}

// populateLists builds <view>/<list name>/ for every list holding at least
// one media post.
func (g *generation) populateLists(ctx context.Context) error {
	memberships, err := g.Catalog.ListListMemberships(ctx)
	if err != nil {
		return fmt.Errorf("failed to list list memberships: %w", err)
	}

	var (
		order  []string
		byList = make(map[string][]entry)
	)
	for _, m := range memberships {
		if _, seen := byList[m.ListName]; !seen {
			order = append(order, m.ListName)
		}
		byList[m.ListName] = append(byList[m.ListName], entry{label: "list " + m.ListName, postID: m.PostID})
	}

	for _, name := range order {
		if ctx.Err() != nil {
			return nil
		}
		var dir string
		for _, e := range byList[name] {
			variants, ok := g.resolve(ctx, e)
			if !ok {
				continue
			}
			if dir == "" {
				dir, err = g.mkdirEntry(name)
				if err != nil {
					g.log.Error("Failed to create list directory, skipping list", "list", name, "error", err)
					g.fail(e.label, err)
					break
				}
			}
			g.linkPost(e.postID, variants, dir)
		}
	}
	return nil
}

func (g *generation) populateFlat(ctx context.Context, entries []entry, dir string) {
	for _, e := range entries {
		if ctx.Err() != nil {
			return
		}
		if variants, ok := g.resolve(ctx, e); ok {
			g.linkPost(e.postID, variants, dir)
		}
	}
}

// resolve checks that the entry's post exists and has media. A missing post
// is a catalog integrity violation and only skips this entry.
func (g *generation) resolve(ctx context.Context, e entry) (variants []*domain.MediaVariant, ok bool) {
	post, err := g.Catalog.GetPost(ctx, e.postID)
	if err != nil {
		if errors.Is(err, catalog.ErrPostNotFound) {
			err = errors.WrapKind(err, errors.ErrDanglingReference, fmt.Sprintf("%s references post %s", e.label, e.postID))
		}
		g.log.Error("Skipping entry", "entry", e.label, "post_id", e.postID, "code", errors.GetCode(err), "error", err)
		g.fail(e.label, err)
		return nil, false
	}

	variants, ok = g.mediaFor(ctx, post.ID)
	if !ok || len(variants) == 0 {
		return nil, false
	}
	return variants, true
}

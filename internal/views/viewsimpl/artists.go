package viewsimpl

import (
	"context"
	"fmt"
	"sort"

	"github.com/orgball2608/harrow-downloader/internal/domain"
)

// populateArtists builds <view>/<username>/ for every account with at least
// one media post.
func (g *generation) populateArtists(ctx context.Context) error {
	posts, err := g.Catalog.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	byAccount := make(map[string][]*domain.Post)
	for _, post := range posts {
		byAccount[post.AccountUsername] = append(byAccount[post.AccountUsername], post)
	}

	accounts := make([]string, 0, len(byAccount))
	for account := range byAccount {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	for _, account := range accounts {
		if ctx.Err() != nil {
			return nil
		}
		g.populateAccount(ctx, account, byAccount[account])
	}
	return nil
}

func (g *generation) populateAccount(ctx context.Context, account string, posts []*domain.Post) {
	var dir string
	for _, post := range posts {
		variants, ok := g.mediaFor(ctx, post.ID)
		if !ok || len(variants) == 0 {
			continue
		}

		if dir == "" {
			var err error
			dir, err = g.mkdirEntry(account)
			if err != nil {
				g.log.Error("Failed to create account directory, skipping account", "account", account, "error", err)
				g.fail(account, err)
				return
			}
		}
		g.linkPost(post.ID, variants, dir)
	}
}

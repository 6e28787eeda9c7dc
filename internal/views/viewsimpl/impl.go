package viewsimpl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/orgball2608/harrow-downloader/internal/repositories/catalog"
	"github.com/orgball2608/harrow-downloader/internal/views"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Catalog catalog.Repository
	Logger  logger.Logger
}

type ViewsImpl struct {
	Catalog catalog.Repository
	Logger  logger.Logger
}

func New(opts Opts) *ViewsImpl {
	return &ViewsImpl{
		Catalog: opts.Catalog,
		Logger:  opts.Logger.WithComponent("Views"),
	}
}

var _ views.Client = (*ViewsImpl)(nil)

func (v *ViewsImpl) Generate(ctx context.Context, kind views.Kind, root, canonicalDir string) (*views.Stats, error) {
	canonicalAbs, err := filepath.Abs(canonicalDir)
	if err != nil {
		return nil, fmt.Errorf("resolve canonical dir: %w", err)
	}

	viewRoot := filepath.Join(root, kind.String())
	if err := os.RemoveAll(viewRoot); err != nil {
		return nil, fmt.Errorf("remove view %s: %w", viewRoot, err)
	}
	if err := os.MkdirAll(viewRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create view %s: %w", viewRoot, err)
	}

	g := &generation{
		ViewsImpl: v,
		log:       v.Logger.With("view", kind.String()),
		stats:     &views.Stats{Kind: kind},
		viewRoot:  viewRoot,
		canonical: canonicalAbs,
	}

	switch kind {
	case views.KindArtists:
		err = g.populateArtists(ctx)
	case views.KindLikes:
		err = g.populateLikes(ctx)
	case views.KindBookmarks:
		err = g.populateBookmarks(ctx)
	case views.KindLists:
		err = g.populateLists(ctx)
	default:
		err = fmt.Errorf("unknown view kind %s", kind)
	}
	if err != nil {
		return g.stats, err
	}

	g.log.Info("View generated",
		"entries", g.stats.Entries,
		"links", g.stats.Links,
		"missing", g.stats.Missing,
		"failed", len(g.stats.Failures),
	)
	return g.stats, ctx.Err()
}

// generation holds the state of one Generate call.
type generation struct {
	*ViewsImpl
	log       logger.Logger
	stats     *views.Stats
	viewRoot  string
	canonical string
}

func (g *generation) fail(entry string, err error) {
	g.stats.Failures = append(g.stats.Failures, views.Failure{Entry: entry, Err: err})
}

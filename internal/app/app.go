package app

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/harrow-downloader/internal/archiver"
	"github.com/orgball2608/harrow-downloader/internal/archiver/archiverimpl"
	"github.com/orgball2608/harrow-downloader/internal/db"
	"github.com/orgball2608/harrow-downloader/internal/fetcher"
	"github.com/orgball2608/harrow-downloader/internal/fetcher/fetcherimpl"
	"github.com/orgball2608/harrow-downloader/internal/repositories/catalog"
	"github.com/orgball2608/harrow-downloader/internal/telegram"
	"github.com/orgball2608/harrow-downloader/internal/telegram/telegramimpl"
	"github.com/orgball2608/harrow-downloader/internal/views"
	"github.com/orgball2608/harrow-downloader/internal/views/viewsimpl"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
	"go.uber.org/fx"
)

// Module wires the pipeline. The caller supplies *config.Config.
var Module = fx.Options(
	fx.Provide(
		logger.FxOption,
	),
	catalog.Module,
	fx.Provide(
		fx.Annotate(
			fetcherimpl.New,
			fx.As(new(fetcher.Client)),
		), fx.Annotate(
			archiverimpl.New,
			fx.As(new(archiver.Client)),
		), fx.Annotate(
			viewsimpl.New,
			fx.As(new(views.Client)),
		), fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		NewRunner,
	),
	fx.Invoke(migrate),
)

const migrateTimeout = time.Minute

// migrate brings the catalog schema up to date before anything reads it.
func migrate(cfg *config.Config, log logger.Logger) error {
	if !cfg.Catalog.Migrate {
		return nil
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	results, err := db.Migrate(ctx, conn, cfg.Catalog.Driver)
	if err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	for _, r := range results {
		log.Info("Applied migration", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

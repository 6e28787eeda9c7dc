package catalog

import (
	"context"
	"fmt"

	"github.com/orgball2608/harrow-downloader/internal/db"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
	"github.com/orgball2608/harrow-downloader/pkg/pgx"
	"github.com/orgball2608/harrow-downloader/pkg/retry"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog_repository",
	fx.Provide(New),
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// New opens the catalog for the configured driver.
func New(opts Opts) (Repository, error) {
	switch opts.Config.Catalog.Driver {
	case config.DriverPostgres:
		pool, err := pgx.New(pgx.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
		if err != nil {
			return nil, err
		}
		return NewPgx(pool, opts.Logger), nil
	case config.DriverSQLite:
		conn, err := db.OpenSQLite(opts.Config.Catalog.SqlitePath)
		if err != nil {
			return nil, err
		}
		opts.LC.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				err := retry.Do(ctx, opts.Logger, "sqlite ping", func() error {
					return conn.PingContext(ctx)
				}, retry.DefaultPolicy())
				if err != nil {
					return fmt.Errorf("failed to open catalog %s: %w", opts.Config.Catalog.SqlitePath, err)
				}
				opts.Logger.Info("Opened sqlite catalog", "path", opts.Config.Catalog.SqlitePath)
				return nil
			},
			OnStop: func(context.Context) error {
				return conn.Close()
			},
		})
		return NewSQLite(conn, opts.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported catalog driver %q", opts.Config.Catalog.Driver)
	}
}

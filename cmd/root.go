package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/harrow-downloader/internal/app"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

type flags struct {
	config             string
	dataDirectory      string
	apiDelay           time.Duration
	workers            int
	skipDBRegen        bool
	skipMetadataFiles  bool
	skipGenerators     bool
	cleanDataDirectory bool
	lists              bool
	schedule           string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "harrow-downloader",
		Short: "Archive media from a post catalog and organise it into symlink views",
		Long: `harrow-downloader reads posts and their media variants from a catalog,
downloads the selected media into <data>/data/All, writes a metadata file per
post and rebuilds the Artists, Likes, Bookmarks and Lists views as symlinks
into that directory. Runs are idempotent: files already present are skipped.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(f.config)
			if err != nil {
				return err
			}
			f.apply(cmd.Flags(), cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f.bind(cmd.Flags())
	return cmd
}

func (f *flags) bind(fl *pflag.FlagSet) {
	fl.StringVar(&f.config, "config", "", "configuration file (yaml, toml or env)")
	fl.StringVar(&f.dataDirectory, "data-directory", "", "directory holding the catalog and the archive")
	fl.DurationVar(&f.apiDelay, "api-delay", 0, "minimum delay between requests to the same host")
	fl.IntVar(&f.workers, "workers", 1, "number of posts archived concurrently")
	fl.BoolVar(&f.skipDBRegen, "skip-db-regen", false, "do not run the catalog ingestion command")
	fl.BoolVar(&f.skipMetadataFiles, "skip-metadata-files", false, "do not write metadata files")
	fl.BoolVar(&f.skipGenerators, "skip-generators", false, "do not rebuild the symlink views")
	fl.BoolVar(&f.cleanDataDirectory, "clean-data-directory", false, "empty the archive before running")
	fl.BoolVar(&f.lists, "lists", false, "also build the Lists view")
	fl.StringVar(&f.schedule, "schedule", "", "cron expression; run repeatedly instead of once")
}

// apply copies explicitly set flags over the loaded configuration.
func (f *flags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("data-directory") {
		cfg.SetDataDir(f.dataDirectory)
	}
	if fs.Changed("api-delay") {
		cfg.Archive.ApiDelay = f.apiDelay
	}
	if fs.Changed("workers") {
		cfg.Archive.Workers = f.workers
	}
	if fs.Changed("skip-db-regen") {
		cfg.Catalog.SkipIngest = f.skipDBRegen
	}
	if fs.Changed("skip-metadata-files") {
		cfg.Archive.SkipMetadata = f.skipMetadataFiles
	}
	if fs.Changed("skip-generators") {
		cfg.Archive.SkipGenerators = f.skipGenerators
	}
	if fs.Changed("clean-data-directory") {
		cfg.Archive.CleanDataDirectory = f.cleanDataDirectory
	}
	if fs.Changed("lists") {
		cfg.Archive.Lists = f.lists
	}
	if fs.Changed("schedule") {
		cfg.Archive.Schedule = f.schedule
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	var runner *app.Runner
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		app.Module,
		fx.Populate(&runner),
	)

	if err := fxApp.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fxApp.Stop(stopCtx); err != nil {
			runner.Logger.Error("Failed to stop application", "error", err)
		}
	}()

	if cfg.Archive.Schedule != "" {
		return runner.Schedule(ctx, cfg.Archive.Schedule)
	}

	_, err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		runner.Logger.Warn("Run interrupted")
	}
	return err
}

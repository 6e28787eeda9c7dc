package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/orgball2608/harrow-downloader/internal/archiver"
	"github.com/orgball2608/harrow-downloader/internal/report"
	"github.com/orgball2608/harrow-downloader/internal/telegram"
	"github.com/orgball2608/harrow-downloader/internal/views"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
	"go.uber.org/fx"
)

const (
	canonicalDirName = "All"
	lockFileName     = ".harrow.lock"
)

// ErrLocked is returned when another run holds the archive root.
var ErrLocked = errors.New("archive root is locked by another run")

type RunnerOpts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Archiver archiver.Client
	Views    views.Client
	Telegram telegram.Client
	Out      io.Writer `optional:"true"`
}

// Runner executes one pipeline run: ingestion, archive, views, report.
type Runner struct {
	Config   *config.Config
	Logger   logger.Logger
	Archiver archiver.Client
	Views    views.Client
	Telegram telegram.Client
	Out      io.Writer
}

func NewRunner(opts RunnerOpts) *Runner {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		Config:   opts.Config,
		Logger:   opts.Logger.WithComponent("Runner"),
		Archiver: opts.Archiver,
		Views:    opts.Views,
		Telegram: opts.Telegram,
		Out:      out,
	}
}

// Run performs a full pass. The returned summary is non-nil whenever the
// archive stage started, even if a later stage failed.
func (r *Runner) Run(ctx context.Context) (*report.Summary, error) {
	started := time.Now()
	summary := &report.Summary{RunID: uuid.NewString()}
	log := r.Logger.With("run_id", summary.RunID)

	root := r.Config.RootDir()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create archive root %s: %w", root, err)
	}

	lock := flock.New(filepath.Join(root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("Failed to release lock", "error", err)
		}
	}()

	if r.Config.Archive.CleanDataDirectory {
		log.Info("Cleaning data directory", "root", root)
		if err := cleanRoot(root); err != nil {
			return nil, err
		}
	}

	canonical := filepath.Join(root, canonicalDirName)
	if err := os.MkdirAll(canonical, 0o755); err != nil {
		return nil, fmt.Errorf("create canonical storage %s: %w", canonical, err)
	}

	if cmd := r.Config.Catalog.IngestCommand; cmd != "" && !r.Config.Catalog.SkipIngest {
		if err := r.ingest(ctx, cmd); err != nil {
			return nil, err
		}
	}

	log.Info("Archiving", "dir", canonical)
	summary.Archive, err = r.Archiver.Run(ctx, canonical)
	if err != nil {
		summary.Duration = time.Since(started)
		return summary, fmt.Errorf("archive: %w", err)
	}

	if r.Config.Archive.SkipGenerators {
		log.Info("Skipping view generation")
	} else {
		for _, kind := range views.Kinds(r.Config.Archive.Lists) {
			stats, err := r.Views.Generate(ctx, kind, root, canonical)
			if stats != nil {
				summary.Views = append(summary.Views, stats)
			}
			if err != nil {
				summary.Duration = time.Since(started)
				return summary, fmt.Errorf("generate %s view: %w", kind, err)
			}
		}
	}

	summary.Duration = time.Since(started)
	r.finish(ctx, log, summary)
	return summary, nil
}

func (r *Runner) finish(ctx context.Context, log logger.Logger, summary *report.Summary) {
	if _, err := fmt.Fprintln(r.Out, summary.Table()); err != nil {
		log.Warn("Failed to print report", "error", err)
	}

	log.Info("Run finished", "failed", summary.Failed(), "duration", summary.Duration)

	if err := r.Telegram.SendSummary(ctx, summary.Markdown()); err != nil {
		log.Error("Failed to send telegram summary", "error", err)
	}
}

// cleanRoot empties the archive root, keeping the lock file held by this run.
func cleanRoot(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read archive root: %w", err)
	}
	for _, e := range entries {
		if e.Name() == lockFileName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			return fmt.Errorf("clean %s: %w", e.Name(), err)
		}
	}
	return nil
}

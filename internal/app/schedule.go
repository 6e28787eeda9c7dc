package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-co-op/gocron/v2"
)

// Schedule runs the pipeline on a cron expression until ctx is done. Runs
// never overlap; a tick that fires during a run is skipped.
func (r *Runner) Schedule(ctx context.Context, expr string) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	job, err := scheduler.NewJob(
		gocron.CronJob(
			expr,
			false,
		),
		gocron.NewTask(func() {
			r.Logger.Info("Running scheduled archive")
			if _, err := r.Run(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				r.Logger.Error("Scheduled run failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %q: %w", expr, err)
	}

	scheduler.Start()
	if next, err := job.NextRun(); err == nil {
		r.Logger.Info("Scheduler started", "schedule", expr, "next_run", next)
	}

	<-ctx.Done()

	if err := scheduler.Shutdown(); err != nil {
		r.Logger.Warn("Failed to stop scheduler", "error", err)
	}
	return nil
}

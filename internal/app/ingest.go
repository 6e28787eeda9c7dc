package app

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

var commandContext = exec.CommandContext

// ingest runs the external command that refreshes the catalog. It sees the
// data directory and catalog location through the environment.
func (r *Runner) ingest(ctx context.Context, command string) error {
	cfg := r.Config
	cmd := commandContext(ctx, "sh", "-c", command) //nolint:gosec
	cmd.Env = append(os.Environ(),
		"HARROW_DATA_DIR="+cfg.App.DataDir,
		"CATALOG_DRIVER="+cfg.Catalog.Driver,
		"CATALOG_SQLITE_PATH="+cfg.Catalog.SqlitePath,
	)
	cmd.Stdout = r.Out
	cmd.Stderr = r.Out

	r.Logger.Info("Running catalog ingestion", "command", command)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("catalog ingestion %q: %w", command, err)
	}
	return nil
}

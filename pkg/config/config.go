package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
		SentryUrl string `env:"SENTRY_URL"`
		DataDir   string `env:"HARROW_DATA_DIR"`
	}
	Catalog struct {
		Driver        string `env:"CATALOG_DRIVER" env-default:"sqlite"`
		SqlitePath    string `env:"CATALOG_SQLITE_PATH"`
		Migrate       bool   `env:"CATALOG_MIGRATE" env-default:"true"`
		IngestCommand string `env:"CATALOG_INGEST_COMMAND"`
		SkipIngest    bool   `env:"CATALOG_SKIP_INGEST"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Archive struct {
		Workers            int           `env:"ARCHIVE_WORKERS" env-default:"1"`
		FetchTimeout       time.Duration `env:"ARCHIVE_FETCH_TIMEOUT" env-default:"60s"`
		ApiDelay           time.Duration `env:"ARCHIVE_API_DELAY" env-default:"0s"`
		SkipMetadata       bool          `env:"ARCHIVE_SKIP_METADATA"`
		SkipGenerators     bool          `env:"ARCHIVE_SKIP_GENERATORS"`
		CleanDataDirectory bool          `env:"ARCHIVE_CLEAN_DATA_DIRECTORY"`
		Lists              bool          `env:"ARCHIVE_LISTS"`
		Schedule           string        `env:"ARCHIVE_SCHEDULE"`
	}
	Telegram struct {
		User     int64  `env:"TELEGRAM_USER"`
		Token    string `env:"TELEGRAM_TOKEN"`
		Endpoint string `env:"TELEGRAM_API_ENDPOINT"`
	}
}

// New reads the configuration from the environment, or from path when it is
// not empty. Environment variables still override values from the file.
func New(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}

	if cfg.App.DataDir == "" {
		cfg.App.DataDir = defaultDataDir()
	}
	if cfg.Catalog.SqlitePath == "" {
		cfg.Catalog.SqlitePath = filepath.Join(cfg.App.DataDir, "db.sqlite")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cleanenv cannot express as tags.
func (c *Config) Validate() error {
	switch c.Catalog.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported catalog driver %q", c.Catalog.Driver)
	}
	if c.Archive.Workers < 1 {
		return fmt.Errorf("archive workers must be at least 1, got %d", c.Archive.Workers)
	}
	if c.Archive.FetchTimeout <= 0 {
		return fmt.Errorf("archive fetch timeout must be positive, got %s", c.Archive.FetchTimeout)
	}
	if c.Archive.ApiDelay < 0 {
		return fmt.Errorf("archive api delay must not be negative, got %s", c.Archive.ApiDelay)
	}
	return nil
}

// RootDir is the archive root holding canonical storage and every view.
func (c *Config) RootDir() string {
	return filepath.Join(c.App.DataDir, "data")
}

// SetDataDir moves the data directory. A sqlite path that still points at the
// previous default follows it.
func (c *Config) SetDataDir(dir string) {
	if c.Catalog.SqlitePath == "" || c.Catalog.SqlitePath == filepath.Join(c.App.DataDir, "db.sqlite") {
		c.Catalog.SqlitePath = filepath.Join(dir, "db.sqlite")
	}
	c.App.DataDir = dir
}

// GetDSN returns the postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "harrow-downloader")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "harrow-downloader"
	}
	return filepath.Join(home, ".local", "share", "harrow-downloader")
}

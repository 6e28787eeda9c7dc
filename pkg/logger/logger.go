package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Logger is the process-wide structured logger. Arguments after the message
// are slog key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// Printf makes the logger usable as an fx.Printer.
	Printf(format string, args ...any)

	With(args ...any) Logger
	WithComponent(name string) Logger
	Flush(timeout time.Duration)
}

type Opts struct {
	Env       string
	Level     string
	SentryDSN string
	Writer    io.Writer
}

type Impl struct {
	*slog.Logger
	sentry bool
}

var _ Logger = (*Impl)(nil)

// New builds the logger. A zerolog handler always receives every record; a
// sentry handler is added for errors when a DSN is configured.
func New(opts Opts) *Impl {
	level := parseLevel(opts.Level)

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}

	var zl zerolog.Logger
	if opts.Env == "production" {
		zl = zerolog.New(out)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(out),
		})
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	sentryEnabled := false
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			fmt.Fprintf(out, "sentry init failed: %v\n", err)
		} else {
			sentryEnabled = true
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		sentry: sentryEnabled,
	}
}

func (l *Impl) Printf(format string, args ...any) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

func (l *Impl) With(args ...any) Logger {
	return &Impl{Logger: l.Logger.With(args...), sentry: l.sentry}
}

func (l *Impl) WithComponent(name string) Logger {
	return l.With("component", name)
}

// Flush waits for buffered sentry events.
func (l *Impl) Flush(timeout time.Duration) {
	if l.sentry {
		sentry.Flush(timeout)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Impl {
	return &Impl{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

package fetcherimpl

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/fetcher"
	"github.com/orgball2608/harrow-downloader/internal/filename"
	"github.com/orgball2608/harrow-downloader/internal/ratelimit"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	"github.com/orgball2608/harrow-downloader/pkg/errors"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
	"go.uber.org/fx"
)

const userAgent = "harrow-downloader/1.0"

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type FetcherImpl struct {
	http    *http.Client
	limiter ratelimit.Limiter
	logger  logger.Logger
}

func New(opts Opts) *FetcherImpl {
	return &FetcherImpl{
		http:    &http.Client{Timeout: opts.Config.Archive.FetchTimeout},
		limiter: ratelimit.NewInMemoryLimiter(opts.Config.Archive.ApiDelay),
		logger:  opts.Logger.WithComponent("Fetcher"),
	}
}

var _ fetcher.Client = (*FetcherImpl)(nil)

func (f *FetcherImpl) Fetch(ctx context.Context, variant *domain.MediaVariant, dir string) (fetcher.Outcome, error) {
	name, err := filename.FromURL(variant.URL)
	if err != nil {
		return fetcher.Outcome{}, err
	}

	outcome := fetcher.Outcome{Filename: name, Status: fetcher.StatusExisting}
	dst := filepath.Join(dir, name)

	_, err = os.Lstat(dst)
	if err == nil {
		f.logger.Debug("File already exists, skipping", "filename", name)
		return outcome, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return outcome, errors.WrapKind(err, errors.ErrWrite, "stat "+dst)
	}

	body, err := f.download(ctx, variant.URL)
	if err != nil {
		return outcome, err
	}

	if err := writeFile(dir, name, body); err != nil {
		return outcome, errors.WrapKind(err, errors.ErrWrite, "write "+dst)
	}

	f.logger.Debug("Downloaded file", "filename", name, "bytes", len(body))
	outcome.Status = fetcher.StatusDownloaded
	outcome.Bytes = int64(len(body))
	return outcome, nil
}

func (f *FetcherImpl) download(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.WrapKind(err, errors.ErrInvalidURL, rawURL)
	}

	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return nil, errors.WrapKind(err, errors.ErrNetwork, "wait for "+u.Host)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.WrapKind(err, errors.ErrInvalidURL, rawURL)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, errors.WrapKind(err, errors.ErrNetwork, "fetch "+rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.WrapKind(fmt.Errorf("unexpected status %s", resp.Status), errors.ErrNetwork, "fetch "+rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapKind(err, errors.ErrNetwork, "read "+rawURL)
	}
	return body, nil
}

// writeFile writes body to a hidden temp file in dir and renames it into
// place, so readers never see a partial file under name.
func writeFile(dir, name string, body []byte) error {
	tmp, err := os.CreateTemp(dir, "."+name+".*.part")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

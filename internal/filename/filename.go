// Package filename derives the local names used as join keys between
// downloads, metadata files and view symlinks.
package filename

import (
	"net/url"
	"path"
	"strings"

	"github.com/orgball2608/harrow-downloader/pkg/errors"
)

const (
	metadataSeparator = "__"
	metadataExt       = ".txt"
)

// FromURL returns the final segment of rawURL's escaped path. Percent
// escapes are kept, so an encoded slash stays inside the segment.
func FromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.WrapKind(err, errors.ErrInvalidURL, rawURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.WrapKind(nil, errors.ErrInvalidURL, rawURL)
	}

	p := u.EscapedPath()
	if p == "" || strings.HasSuffix(p, "/") {
		return "", errors.WrapKind(nil, errors.ErrNoFilename, rawURL)
	}

	name := path.Base(p)
	if name == "." || name == "/" || name == ".." {
		return "", errors.WrapKind(nil, errors.ErrNoFilename, rawURL)
	}
	return name, nil
}

// Metadata returns the metadata filename for an ordered set of media
// filenames. Callers must pass the same order on every run.
func Metadata(ordered []string) string {
	return strings.Join(ordered, metadataSeparator) + metadataExt
}

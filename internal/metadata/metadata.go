package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/filename"
	"github.com/orgball2608/harrow-downloader/pkg/errors"
)

// Render returns the metadata file body for a post's media group.
func Render(post *domain.Post, filenames []string) []byte {
	return []byte(fmt.Sprintf(
		"post id: %s\nartist: %s\ntext:\n%s\n\n\nfiles: %s",
		post.ID,
		post.AccountUsername,
		post.Text,
		strings.Join(filenames, ", "),
	))
}

// Write stores the metadata file for post in dir, replacing any previous
// version, and returns its filename.
func Write(dir string, post *domain.Post, filenames []string) (string, error) {
	name := filename.Metadata(filenames)
	if err := os.WriteFile(filepath.Join(dir, name), Render(post, filenames), 0o644); err != nil {
		return "", errors.WrapKind(err, errors.ErrWrite, "write metadata "+name)
	}
	return name, nil
}

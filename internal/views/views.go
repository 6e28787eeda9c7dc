package views

import (
	"context"
	"fmt"

	"github.com/orgball2608/harrow-downloader/pkg/errors"
)

// Kind is the closed set of views built over canonical storage.
type Kind int

const (
	KindArtists Kind = iota
	KindLikes
	KindBookmarks
	KindLists
)

// String returns the directory name of the view under the archive root.
func (k Kind) String() string {
	switch k {
	case KindArtists:
		return "Artists"
	case KindLikes:
		return "Likes"
	case KindBookmarks:
		return "Bookmarks"
	case KindLists:
		return "Lists"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Kinds returns the views built on every run, with Lists appended when
// enabled.
func Kinds(lists bool) []Kind {
	kinds := []Kind{KindArtists, KindLikes, KindBookmarks}
	if lists {
		kinds = append(kinds, KindLists)
	}
	return kinds
}

// Failure is one entry skipped while populating a view.
type Failure struct {
	Entry string
	Err   error
}

// Stats summarises one view generation.
type Stats struct {
	Kind     Kind
	Entries  int
	Links    int
	Missing  int
	NonMedia int
	Failures []Failure
}

// Collisions counts links that already existed.
func (s *Stats) Collisions() int {
	n := 0
	for _, f := range s.Failures {
		if errors.Is(f.Err, errors.ErrAlreadyExists) {
			n++
		}
	}
	return n
}

type Client interface {
	// Generate recreates root/<kind> empty and fills it with symlinks into
	// canonicalDir. Only a failure to recreate the view directory or to
	// read the catalog listing is returned; entry failures land in Stats.
	Generate(ctx context.Context, kind Kind, root, canonicalDir string) (*Stats, error)
}

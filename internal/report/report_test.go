package report

import (
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/harrow-downloader/internal/archiver"
	"github.com/orgball2608/harrow-downloader/internal/views"
	pkgerrors "github.com/orgball2608/harrow-downloader/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func sample() *Summary {
	return &Summary{
		RunID:    "run-1",
		Duration: 90 * time.Second,
		Archive: &archiver.Report{
			Posts:           1200,
			Downloaded:      3,
			Existing:        5,
			Bytes:           2_500_000,
			MetadataWritten: 2,
			Failures:        []archiver.Failure{{PostID: "p1", Err: errors.New("boom")}},
		},
		Views: []*views.Stats{
			{Kind: views.KindArtists, Entries: 4, Links: 9},
			{Kind: views.KindBookmarks, Entries: 2, Links: 2, Failures: []views.Failure{
				{Entry: "p7", Err: pkgerrors.WrapKind(nil, pkgerrors.ErrAlreadyExists, "symlink Bookmarks/a.jpg")},
			}},
			{Kind: views.KindLikes, Entries: 1, Links: 2, Missing: 1, Failures: []views.Failure{{Entry: "like 3", Err: errors.New("gone")}}},
		},
	}
}

func TestSummary_Failed(t *testing.T) {
	assert.Equal(t, 3, sample().Failed())
	assert.Zero(t, (&Summary{}).Failed())
}

func TestSummary_Table(t *testing.T) {
	out := sample().Table()

	assert.Contains(t, out, "Run run-1")
	assert.Contains(t, out, "Artists")
	assert.Contains(t, out, "Likes")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "2.5 MB")
	assert.Contains(t, out, "1m30s")
}

func TestSummary_MarkdownEscapes(t *testing.T) {
	out := sample().Markdown()

	assert.Contains(t, out, "*harrow run finished with 3 failures*")
	assert.Contains(t, out, `2\.5 MB`)
	assert.Contains(t, out, "Artists: 4 entries, 9 links")
	assert.NotContains(t, out, "2.5 MB")
}

func TestSummary_Collisions(t *testing.T) {
	s := sample()
	assert.Equal(t, 1, s.Collisions())
	assert.Contains(t, s.Table(), "Collisions")
	assert.Contains(t, s.Markdown(), "Bookmarks: 2 entries, 2 links, 1 collision")
	assert.NotContains(t, s.Markdown(), "Artists: 4 entries, 9 links,")
}

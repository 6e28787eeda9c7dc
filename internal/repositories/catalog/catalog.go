package catalog

import (
	"context"
	"errors"

	"github.com/orgball2608/harrow-downloader/internal/domain"
)

var ErrPostNotFound = errors.New("post not found")

//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=mocks/mock.go

// Repository is read-only access to the catalog populated by the ingester.
type Repository interface {
	// ListPosts returns every post ordered by id
	ListPosts(ctx context.Context) ([]*domain.Post, error)

	// GetPost returns one post or ErrPostNotFound
	GetPost(ctx context.Context, id string) (*domain.Post, error)

	// ListMediaForPost returns the media variants of a post in a stable order
	ListMediaForPost(ctx context.Context, postID string) ([]*domain.MediaVariant, error)

	ListLikes(ctx context.Context) ([]*domain.Like, error)
	ListBookmarks(ctx context.Context) ([]*domain.Bookmark, error)
	ListListMemberships(ctx context.Context) ([]*domain.ListMembership, error)
}

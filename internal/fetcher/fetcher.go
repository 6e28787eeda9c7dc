package fetcher

import (
	"context"

	"github.com/orgball2608/harrow-downloader/internal/domain"
)

type Status int

const (
	// StatusDownloaded means the file was fetched and written during this call.
	StatusDownloaded Status = iota
	// StatusExisting means the file was already present and left untouched.
	StatusExisting
)

func (s Status) String() string {
	switch s {
	case StatusDownloaded:
		return "downloaded"
	case StatusExisting:
		return "existing"
	default:
		return "unknown"
	}
}

type Outcome struct {
	Filename string
	Status   Status
	Bytes    int64
}

//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock.go

type Client interface {
	// Fetch stores variant in dir under its derived filename. An existing
	// file is never fetched again.
	Fetch(ctx context.Context, variant *domain.MediaVariant, dir string) (Outcome, error)
}

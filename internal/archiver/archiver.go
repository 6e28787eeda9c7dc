package archiver

import (
	"context"
)

// Failure is one unit skipped during a run.
type Failure struct {
	PostID   string
	Filename string
	Err      error
}

// Report summarises one archive run.
type Report struct {
	Posts           int
	NonMedia        int
	Downloaded      int
	Existing        int
	Bytes           int64
	MetadataWritten int
	Failures        []Failure
}

// Failed returns the number of skipped units.
func (r *Report) Failed() int {
	return len(r.Failures)
}

type Client interface {
	// Run archives the media of every catalog post into canonicalDir. Per
	// post failures are logged and recorded in the report; the returned
	// error is reserved for failures that stop the whole run.
	Run(ctx context.Context, canonicalDir string) (*Report, error)
}

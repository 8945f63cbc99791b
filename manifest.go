package docdig

import (
	"context"
	"time"
)

// Page statuses recorded in a manifest.
const (
	PageWritten   = "written"
	PageUnchanged = "unchanged"
)

// PageRecord describes one accepted page of a harvest.
type PageRecord struct {
	ID          string    `json:"id"`
	Seed        string    `json:"seed"`
	URL         string    `json:"url"`
	Path        string    `json:"path"`
	Format      Format    `json:"format"`
	Title       string    `json:"title"`
	ContentHash string    `json:"contentHash"`
	Status      string    `json:"status"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *PageRecord) Validate() error {
	if r.Seed == "" {
		return Errorf(EINVALID, "page record seed required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "page record URL required")
	}
	if r.Path == "" {
		return Errorf(EINVALID, "page record path required")
	}
	return nil
}

// Manifest records the pages accepted during harvests.
type Manifest interface {
	// Record stores a page record, replacing any earlier record for the
	// same seed and URL.
	Record(ctx context.Context, rec *PageRecord) error

	// FindPages returns the records for a seed ordered by path.
	FindPages(ctx context.Context, seed string) ([]*PageRecord, error)
}

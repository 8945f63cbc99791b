package docdig

import "time"

// Defaults for a harvest run.
const (
	DefaultOutputRoot        = "sites"
	DefaultMaxPages          = 10000
	DefaultRequestsPerSecond = 1.5
	DefaultUserAgent         = "docdig/0.1"
	DefaultFetchTimeout      = 20 * time.Second
)

// Options configures a harvest. Every seed session reads, never mutates it.
type Options struct {
	OutputRoot string

	// MaxPages bounds the number of pages accepted per seed session.
	MaxPages int

	// MaxDepth bounds link-following depth; 0 means unlimited.
	MaxDepth int

	// RequestsPerSecond sets the minimum delay between consecutive fetches.
	RequestsPerSecond float64

	// Filter holds the optional include/exclude patterns.
	Filter *URLFilter

	// SitemapFirst tries the site's sitemap before crawling. It only takes
	// effect when Filter is empty.
	SitemapFirst bool

	// SaveHTML is accepted for compatibility and currently has no effect.
	SaveHTML bool

	// Language is a hint reserved for future scope narrowing; it currently
	// has no effect on scope or paths.
	Language string

	Format Format
	Diff   bool
}

// Validate returns an error if the options cannot drive a harvest.
func (o *Options) Validate() error {
	if o.OutputRoot == "" {
		return Errorf(EINVALID, "output root required")
	}
	if o.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive, got %d", o.MaxPages)
	}
	if o.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must not be negative, got %d", o.MaxDepth)
	}
	if o.RequestsPerSecond <= 0 {
		return Errorf(EINVALID, "requests per second must be positive, got %g", o.RequestsPerSecond)
	}
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	return nil
}

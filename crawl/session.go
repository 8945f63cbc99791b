package crawl

import (
	"path/filepath"

	"github.com/fwojciec/docdig"
	"github.com/fwojciec/docdig/bloom"
)

// Sizing for the per-session sets.
const (
	// expectedURLs is the expected number of members for Bloom filter sizing.
	expectedURLs = 10000
	// falsePositiveRate is the prefilter's acceptable false positive rate.
	falsePositiveRate = 0.01
)

// Result counts the outcome of one seed's harvest.
type Result struct {
	Seed string
	Dir  string

	// Sitemap is set when the pages came from the site's sitemap.
	Sitemap bool

	// Written counts accepted pages, including those diff mode left
	// unchanged. It is bounded by Options.MaxPages.
	Written   int
	Unchanged int

	// Failed counts fetch and write failures.
	Failed int

	// Skipped counts policy rejections and duplicate content.
	Skipped int

	// Visited counts distinct URLs the crawl dequeued.
	Visited int
}

// Session holds the mutable state of one seed's harvest. Sessions share
// nothing with each other.
type Session struct {
	Seed  string
	Host  string
	Root  string
	Scope docdig.Scope

	Frontier *Frontier
	Visited  *bloom.Set
	Hashes   *bloom.Set

	Result Result
}

// NewSession prepares a session for seed writing below outputRoot/<host>.
// The frontier starts with the seed's crawl root at depth 0.
func NewSession(seed, outputRoot string) (*Session, error) {
	root, err := docdig.CrawlRoot(seed)
	if err != nil {
		return nil, err
	}
	scope, err := docdig.NewScope(root)
	if err != nil {
		return nil, err
	}

	host := docdig.SeedHost(seed)
	return &Session{
		Seed:     seed,
		Host:     host,
		Root:     root,
		Scope:    scope,
		Frontier: NewFrontier(docdig.Entry{URL: root}),
		Visited:  bloom.NewSet(expectedURLs, falsePositiveRate),
		Hashes:   bloom.NewSet(expectedURLs, falsePositiveRate),
		Result: Result{
			Seed: seed,
			Dir:  filepath.Join(outputRoot, host),
		},
	}, nil
}

// event returns an event of type t stamped with the session's seed.
func (s *Session) event(t docdig.EventType) docdig.Event {
	return docdig.Event{Type: t, Seed: s.Seed, Host: s.Host}
}

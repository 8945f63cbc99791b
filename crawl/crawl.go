// Package crawl harvests documentation sites: it walks a seed's scope
// breadth-first (or its sitemap), extracts each page, and writes one
// Output Record per accepted page.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdig"
	"github.com/google/uuid"
)

// Crawler runs the frontier state machine over one session at a time.
// Robots, Limiter and Manifest are optional.
type Crawler struct {
	Fetcher   docdig.Fetcher
	Extractor docdig.Extractor
	Converter docdig.Converter
	Links     docdig.LinkExtractor
	Robots    docdig.RobotsService
	Paths     docdig.PathResolver
	Writer    docdig.Writer
	Limiter   docdig.DomainLimiter
	Manifest  docdig.Manifest

	// Now stamps manifest records. Defaults to time.Now.
	Now func() time.Time
}

// Crawl drains s's frontier until it is empty or opts.MaxPages pages have
// been accepted. Fetch and write failures are reported through emit and
// never stop the crawl. Crawl returns an error only when ctx is done or the
// manifest cannot be updated.
func (c *Crawler) Crawl(ctx context.Context, s *Session, opts docdig.Options, emit docdig.EventFunc) error {
	policy := docdig.AllowAll
	if c.Robots != nil {
		policy = c.Robots.Load(ctx, s.Root)
	}

	for s.Result.Written < opts.MaxPages {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, ok := s.Frontier.Pop()
		if !ok {
			return nil
		}
		if !s.Visited.Add(entry.URL) {
			continue
		}

		if !policy.Allowed(entry.URL) || !opts.Filter.Match(entry.URL) {
			s.Result.Skipped++
			continue
		}

		html, err := c.fetch(ctx, entry.URL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.Result.Failed++
			ev := s.event(docdig.EventPageFailed)
			ev.URL, ev.Err = entry.URL, err
			emit.Emit(ev)
			continue
		}

		if !s.Hashes.Add(computeHash(html)) {
			s.Result.Skipped++
			continue
		}

		if err := c.accept(ctx, s, opts, s.Root, entry.URL, html, 0, emit); err != nil {
			return err
		}

		if opts.MaxDepth == 0 || entry.Depth < opts.MaxDepth {
			for _, link := range c.Links.ExtractLinks(html, entry.URL) {
				if s.Scope.Contains(link) {
					s.Frontier.Push(docdig.Entry{URL: link, Depth: entry.Depth + 1})
				}
			}
		}
	}
	return nil
}

// fetch waits for the host's rate limit and fetches rawURL.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	if c.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", docdig.Errorf(docdig.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return c.Fetcher.Fetch(ctx, rawURL)
}

// accept extracts html, resolves its path against root and writes it. A
// write failure is reported and counted but is not returned; only manifest
// failures are.
func (c *Crawler) accept(ctx context.Context, s *Session, opts docdig.Options, root, pageURL, html string, total int, emit docdig.EventFunc) error {
	doc := docdig.Extract(c.Extractor, c.Converter, html, pageURL)
	path := c.Paths.Resolve(root, pageURL, opts.Language, opts.Format)

	res, err := c.Writer.Write(ctx, docdig.WriteRequest{
		Dir:      s.Result.Dir,
		Path:     path,
		Document: doc,
		Format:   opts.Format,
		Diff:     opts.Diff,
	})
	if err != nil {
		s.Result.Failed++
		ev := s.event(docdig.EventPageFailed)
		ev.URL, ev.Path, ev.Err = pageURL, path, err
		emit.Emit(ev)
		return nil
	}

	s.Result.Written++
	if res.Unchanged {
		s.Result.Unchanged++
	}

	if err := c.record(ctx, s, opts, doc, path, res); err != nil {
		return err
	}

	ev := s.event(docdig.EventPageWritten)
	ev.Seq, ev.Total = s.Result.Written, total
	ev.URL, ev.Path, ev.Unchanged = pageURL, path, res.Unchanged
	emit.Emit(ev)
	return nil
}

// record adds an accepted page to the manifest, if one is configured.
func (c *Crawler) record(ctx context.Context, s *Session, opts docdig.Options, doc *docdig.Document, path string, res docdig.WriteResult) error {
	if c.Manifest == nil {
		return nil
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	status := docdig.PageWritten
	if res.Unchanged {
		status = docdig.PageUnchanged
	}

	rec := &docdig.PageRecord{
		ID:          uuid.NewString(),
		Seed:        s.Seed,
		URL:         doc.URL,
		Path:        path,
		Format:      opts.Format,
		Title:       doc.Title,
		ContentHash: res.Hash,
		Status:      status,
		ScrapedAt:   now().UTC(),
	}
	if err := c.Manifest.Record(ctx, rec); err != nil {
		return fmt.Errorf("record %s: %w", doc.URL, err)
	}
	return nil
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/docdig"
	"golang.org/x/sync/errgroup"
)

// Harvester runs one session per seed, trying the sitemap first when asked
// and falling back to the frontier crawl.
type Harvester struct {
	Crawler  *Crawler
	Sitemaps docdig.SitemapService

	// Parallel bounds how many seed sessions run at once. Values below 1
	// mean one.
	Parallel int
}

// Report aggregates the results of a harvest.
type Report struct {
	// Results holds one entry per seed, in seed order.
	Results []*Result

	Written   int
	Unchanged int
	Failed    int
}

// Harvest validates opts and every seed, then harvests each seed. On
// cancellation the report still counts the pages accepted so far.
func (h *Harvester) Harvest(ctx context.Context, seeds []string, opts docdig.Options, emit docdig.EventFunc) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, docdig.Errorf(docdig.EINVALID, "at least one seed URL required")
	}

	sessions := make([]*Session, len(seeds))
	for i, seed := range seeds {
		s, err := NewSession(seed, opts.OutputRoot)
		if err != nil {
			return nil, err
		}
		sessions[i] = s
	}

	emit = serialize(emit)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(h.Parallel, 1))
	for _, s := range sessions {
		g.Go(func() error {
			return h.harvestSession(gctx, s, opts, emit)
		})
	}
	err := g.Wait()

	report := &Report{}
	for _, s := range sessions {
		r := s.Result
		report.Results = append(report.Results, &r)
		report.Written += r.Written
		report.Unchanged += r.Unchanged
		report.Failed += r.Failed
	}
	return report, err
}

// harvestSession harvests one seed.
func (h *Harvester) harvestSession(ctx context.Context, s *Session, opts docdig.Options, emit docdig.EventFunc) error {
	defer func() {
		s.Result.Visited = s.Visited.Len()
		ev := s.event(docdig.EventSeedFinished)
		ev.Seq = s.Result.Written
		emit.Emit(ev)
	}()

	if opts.SitemapFirst && opts.Filter.Empty() && h.Sitemaps != nil {
		emit.Emit(s.event(docdig.EventTryingSitemap))

		if err := h.harvestSitemap(ctx, s, opts, emit); err != nil {
			return err
		}
		if s.Result.Written > 0 {
			s.Result.Sitemap = true
			return nil
		}
		emit.Emit(s.event(docdig.EventSitemapEmpty))
	}

	emit.Emit(s.event(docdig.EventFallbackCrawl))
	return h.Crawler.Crawl(ctx, s, opts, emit)
}

// harvestSitemap fetches and writes every sitemap URL within the seed's
// scope, taken as given. There is no traversal, robots check or body
// dedup on this path.
func (h *Harvester) harvestSitemap(ctx context.Context, s *Session, opts docdig.Options, emit docdig.EventFunc) error {
	scope, err := docdig.NewScope(s.Seed)
	if err != nil {
		return err
	}

	var urls []string
	for u := range h.Sitemaps.Discover(ctx, s.Seed) {
		if scope.Contains(u) {
			urls = append(urls, u)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}

	found := s.event(docdig.EventSitemapFound)
	found.Total = len(urls)
	emit.Emit(found)

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Result.Written >= opts.MaxPages {
			return nil
		}

		html, err := h.Crawler.fetch(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.Result.Failed++
			ev := s.event(docdig.EventPageFailed)
			ev.URL, ev.Err = u, err
			emit.Emit(ev)
			continue
		}

		if err := h.Crawler.accept(ctx, s, opts, s.Seed, u, html, len(urls), emit); err != nil {
			return err
		}
	}
	return nil
}

// serialize makes emit safe to call from parallel sessions.
func serialize(emit docdig.EventFunc) docdig.EventFunc {
	if emit == nil {
		return nil
	}
	var mu sync.Mutex
	return func(e docdig.Event) {
		mu.Lock()
		defer mu.Unlock()
		emit(e)
	}
}

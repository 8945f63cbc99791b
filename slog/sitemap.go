package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/docdig"
)

// Ensure LoggingSitemapService implements docdig.SitemapService.
var _ docdig.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   docdig.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next docdig.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// Discover delegates to the wrapped service. The discovery is logged once
// the returned sequence stops, with the number of URLs it yielded.
func (s *LoggingSitemapService) Discover(ctx context.Context, root string) iter.Seq[string] {
	seq := s.next.Discover(ctx, root)
	return func(yield func(string) bool) {
		var count int
		defer func(begin time.Time) {
			s.logger.Info("sitemap discovery",
				"url", root,
				"count", count,
				"duration", time.Since(begin),
			)
		}(time.Now())

		for u := range seq {
			count++
			if !yield(u) {
				return
			}
		}
	}
}

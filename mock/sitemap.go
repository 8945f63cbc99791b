package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/docdig"
)

var _ docdig.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docdig.SitemapService.
type SitemapService struct {
	DiscoverFn func(ctx context.Context, root string) iter.Seq[string]
}

func (s *SitemapService) Discover(ctx context.Context, root string) iter.Seq[string] {
	return s.DiscoverFn(ctx, root)
}

var _ docdig.RobotsService = (*RobotsService)(nil)

// RobotsService is a mock implementation of docdig.RobotsService.
type RobotsService struct {
	LoadFn func(ctx context.Context, root string) docdig.RobotsPolicy
}

func (s *RobotsService) Load(ctx context.Context, root string) docdig.RobotsPolicy {
	return s.LoadFn(ctx, root)
}

var _ docdig.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of docdig.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(url string) bool
}

func (p *RobotsPolicy) Allowed(url string) bool {
	return p.AllowedFn(url)
}

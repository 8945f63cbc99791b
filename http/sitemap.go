package http

import (
	"context"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docdig"
)

// maxSitemapBytes bounds how much of a sitemap document is read.
const maxSitemapBytes = 50 << 20

// Ensure SitemapService implements docdig.SitemapService.
var _ docdig.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// Discover yields the page URLs declared by the sitemaps at /sitemap.xml on
// root's host and at sitemap.xml relative to root. Documents are fetched
// only as the sequence is consumed.
func (s *SitemapService) Discover(ctx context.Context, root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, candidate := range sitemapCandidates(root) {
			if ctx.Err() != nil {
				return
			}
			if !s.yieldSitemap(ctx, candidate, yield) {
				return
			}
		}
	}
}

// sitemapCandidates returns the well-known sitemap locations for root,
// without duplicates.
func sitemapCandidates(root string) []string {
	base, err := url.Parse(root)
	if err != nil || base.Host == "" {
		return nil
	}

	var candidates []string
	for _, ref := range []string{"/sitemap.xml", "sitemap.xml"} {
		u := base.ResolveReference(&url.URL{Path: ref})
		if len(candidates) > 0 && candidates[0] == u.String() {
			continue
		}
		candidates = append(candidates, u.String())
	}
	return candidates
}

// yieldSitemap yields the URLs of one candidate location, following a
// sitemap index one level deep. It returns false once the consumer stops.
func (s *SitemapService) yieldSitemap(ctx context.Context, sitemapURL string, yield func(string) bool) bool {
	root, ok := s.fetchXML(ctx, sitemapURL, true)
	if !ok {
		return true
	}

	switch root.Tag {
	case "sitemapindex":
		for _, child := range locs(root, "sitemap") {
			if ctx.Err() != nil {
				return false
			}
			childRoot, ok := s.fetchXML(ctx, child, false)
			if !ok {
				continue
			}
			for _, u := range locs(childRoot, "url") {
				if !yield(u) {
					return false
				}
			}
		}
	case "urlset":
		for _, u := range locs(root, "url") {
			if !yield(u) {
				return false
			}
		}
	}
	return true
}

// locs returns the trimmed, non-empty <loc> text of every child element of
// root named tag, in document order.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// fetchXML fetches and parses one sitemap document. Any failure reports
// false. Candidate locations must also declare an XML content type.
func (s *SitemapService) fetchXML(ctx context.Context, targetURL string, requireXML bool) (*etree.Element, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	if requireXML && !strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "xml") {
		return nil, false
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(io.LimitReader(resp.Body, maxSitemapBytes)); err != nil {
		return nil, false
	}

	root := doc.Root()
	if root == nil {
		return nil, false
	}
	return root, true
}

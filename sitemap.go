package docdig

import (
	"context"
	"iter"
	"regexp"
)

// SitemapService enumerates a site's pages via the sitemap protocol.
type SitemapService interface {
	// Discover lazily yields page URLs declared by the sitemap resources
	// found at well-known locations relative to root. A sitemap index is
	// followed one level deep. URLs are yielded in declaration order and
	// are not deduplicated. Any fetch or parse failure for a sitemap
	// resource counts as "no sitemap there"; an empty sequence means no
	// usable sitemap was found.
	Discover(ctx context.Context, root string) iter.Seq[string]
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	// If include patterns exist, URL must match at least one
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// Empty reports whether the filter has no patterns at all.
func (f *URLFilter) Empty() bool {
	return f == nil || (len(f.Include) == 0 && len(f.Exclude) == 0)
}

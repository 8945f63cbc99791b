package fs

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/docdig"
)

var unsafePathRe = regexp.MustCompile(`[^A-Za-z0-9/_-]`)

// Ensure PathResolver implements docdig.PathResolver at compile time.
var _ docdig.PathResolver = (*PathResolver)(nil)

// PathResolver maps page URLs to slash-separated paths relative to a seed's
// output directory.
type PathResolver struct{}

// NewPathResolver creates a new PathResolver.
func NewPathResolver() *PathResolver {
	return &PathResolver{}
}

// Resolve converts pageURL to an output path.
// Example: root https://x/docs/, page https://x/docs/guide/index.html → guide.md
//
// The page path is taken relative to the root path. A trailing slash names an
// index page, ".html" is dropped, and a nested ".../index" collapses onto its
// directory. The root page itself stays "index". Characters outside
// [A-Za-z0-9/_-] become "-".
func (r *PathResolver) Resolve(rootURL, pageURL, langHint string, format docdig.Format) string {
	rel := relativePath(rootURL, pageURL)

	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index"
	}
	rel = strings.TrimSuffix(rel, ".html")

	if parent, ok := strings.CutSuffix(rel, "/index"); ok && strings.Trim(parent, "/") != "" {
		rel = parent
	}

	safe := strings.Trim(unsafePathRe.ReplaceAllString(rel, "-"), "/")
	if safe == "" {
		safe = "index"
	}
	return safe + format.Extension()
}

// relativePath returns the page's path relative to the root's directory, or
// the page's full path without its leading slash when it lies elsewhere.
func relativePath(rootURL, pageURL string) string {
	page, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	base := "/"
	if root, err := url.Parse(rootURL); err == nil {
		base = strings.TrimSuffix(root.Path, "/") + "/"
	}

	switch {
	case strings.HasPrefix(page.Path, base):
		return page.Path[len(base):]
	case page.Path+"/" == base:
		return ""
	default:
		return strings.TrimPrefix(page.Path, "/")
	}
}

package docdig

import (
	"net/url"
	"strings"
)

// Entry is a URL awaiting a fetch attempt at a given crawl depth.
// The seed's scope root sits at depth 0.
type Entry struct {
	URL   string
	Depth int
}

// LinkExtractor parses hyperlink targets from HTML.
type LinkExtractor interface {
	// ExtractLinks returns the normalized absolute target of every anchor,
	// in document order. Unparseable and non-HTTP targets are dropped.
	ExtractLinks(html string, pageURL string) []string
}

// Scope is the set of URLs considered part of a seed's documentation:
// same scheme and host, path starting with PathPrefix.
type Scope struct {
	Scheme     string
	Host       string
	PathPrefix string
}

// NewScope returns the scope rooted at rawURL, taken as given.
func NewScope(rawURL string) (Scope, error) {
	u, err := parseAbsolute(rawURL)
	if err != nil {
		return Scope{}, err
	}
	return Scope{
		Scheme:     strings.ToLower(u.Scheme),
		Host:       strings.ToLower(u.Host),
		PathPrefix: u.Path,
	}, nil
}

// Contains reports whether rawURL is in scope.
func (s Scope) Contains(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.ToLower(u.Scheme) == s.Scheme &&
		strings.ToLower(u.Host) == s.Host &&
		strings.HasPrefix(u.Path, s.PathPrefix)
}

// CrawlRoot returns the seed with its fragment dropped, its host lowercased
// and a trailing slash appended to its path, so the seed's own directory
// becomes the crawl scope.
func CrawlRoot(seed string) (string, error) {
	u, err := parseAbsolute(seed)
	if err != nil {
		return "", err
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Host = strings.ToLower(u.Host)
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		u.RawPath = ""
	}
	return u.String(), nil
}

// SeedHost returns the lowercased host of a seed URL, used as its output
// subdirectory.
func SeedHost(seed string) string {
	u, err := url.Parse(seed)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return strings.ToLower(u.Host)
}

// NormalizeURL resolves href against base, strips the fragment and
// lowercases the host. The bool result is false for empty or unparseable
// targets and for schemes other than http and https.
func NormalizeURL(base, href string) (string, bool) {
	if strings.TrimSpace(href) == "" {
		return "", false
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}

	resolved := b.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	resolved.Host = strings.ToLower(resolved.Host)
	return resolved.String(), true
}

func parseAbsolute(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	return u, nil
}

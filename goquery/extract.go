// Package goquery implements content and link extraction over a parsed DOM.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdig"
)

// Ensure LinkExtractor implements docdig.LinkExtractor at compile time.
var _ docdig.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects hyperlink targets from HTML.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the normalized target of every anchor in document
// order. Targets are resolved against the document's <base href> when
// present, otherwise against pageURL. Duplicates are kept.
func (e *LinkExtractor) ExtractLinks(html string, pageURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	base := resolveBase(doc, pageURL)

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if link, ok := docdig.NormalizeURL(base, href); ok {
			links = append(links, link)
		}
	})
	return links
}

// resolveBase honors a <base href> element, falling back to pageURL.
func resolveBase(doc *goquery.Document, pageURL string) string {
	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return pageURL
	}
	if base, ok := docdig.NormalizeURL(pageURL, href); ok {
		return base
	}
	return pageURL
}

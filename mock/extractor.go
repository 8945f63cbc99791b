package mock

import "github.com/fwojciec/docdig"

var _ docdig.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docdig.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*docdig.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*docdig.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

var _ docdig.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docdig.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, pageURL string) []string
}

func (e *LinkExtractor) ExtractLinks(html, pageURL string) []string {
	return e.ExtractLinksFn(html, pageURL)
}

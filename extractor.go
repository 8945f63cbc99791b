package docdig

import (
	"fmt"
	"strings"
)

// CodeBlock is a preformatted block lifted out of the main content before
// generic conversion. Its Code is restored verbatim into the final body.
type CodeBlock struct {
	Placeholder string
	Language    string
	Code        string
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the text of the document's title element, or empty.
	Title string

	// ContentHTML is the main-content node as clean HTML.
	// Chrome (nav, sidebar, scripts, footer, forms, images) has been removed.
	ContentHTML string

	// MarkupHTML is ContentHTML with every <pre> replaced by the placeholder
	// of the matching entry in CodeBlocks.
	MarkupHTML string

	CodeBlocks []CodeBlock
}

// Extractor selects the main content of an HTML page.
type Extractor interface {
	// Extract strips non-content elements, selects the main-content node and
	// lifts code blocks out of it. Malformed HTML degrades to a best-effort
	// parse; a page without any content landmark falls back to its body.
	Extract(html string, pageURL string) (*ExtractResult, error)
}

// FencePlaceholder returns the placeholder token for the i-th code block of
// a document. The nonce is chosen per document so page text cannot spell a
// live token. Tokens are purely alphanumeric so Markdown conversion never
// escapes them.
func FencePlaceholder(nonce string, i int) string {
	return fmt.Sprintf("docdigfence%sn%dx", nonce, i)
}

// Extract runs the full content pipeline over one HTML body: main-content
// extraction, generic conversion, and Markdown normalization. It never fails;
// an extractor or converter error degrades to an empty body.
func Extract(extractor Extractor, converter Converter, html, pageURL string) *Document {
	doc := &Document{URL: pageURL}

	result, err := extractor.Extract(html, pageURL)
	if err != nil || result == nil {
		return doc
	}
	doc.Title = result.Title
	doc.ContentHTML = result.ContentHTML

	var markdown string
	if strings.TrimSpace(result.MarkupHTML) != "" {
		markdown, err = converter.Convert(result.MarkupHTML)
		if err != nil {
			markdown = ""
		}
	}

	doc.Body = NormalizeMarkdown(markdown, result.CodeBlocks)
	return doc
}

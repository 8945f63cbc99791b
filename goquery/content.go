package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdig"
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docdig.Extractor at compile time.
var _ docdig.Extractor = (*Extractor)(nil)

// chromeSelector matches elements that never carry page content.
const chromeSelector = "nav, aside, script, style, header, footer, form, img"

// mainCandidates is the main-content cascade, highest priority first.
// The document body is the last resort and is not listed.
var mainCandidates = []func(doc *goquery.Document) *goquery.Selection{
	first("main"),
	first("article"),
	first("div.content"),
	first("div.document"),
	first("div.theme-default-content"),
	contentIDDiv,
}

// codeLanguages are bare class tokens accepted as a language hint.
var codeLanguages = map[string]bool{
	"bash":   true,
	"shell":  true,
	"sh":     true,
	"nix":    true,
	"json":   true,
	"yaml":   true,
	"toml":   true,
	"python": true,
	"js":     true,
	"ts":     true,
}

var (
	contentIDRe  = regexp.MustCompile(`(?i)^(content|main)`)
	lineNumberRe = regexp.MustCompile(`^\s*\d{1,3}\s*$`)
	treeGlyphRe  = regexp.MustCompile("^[\\s│└├┬─›>•·`~\\\\/|:_-]+$")
)

// Extractor selects main content with a fixed landmark cascade.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract strips chrome, picks the main-content node, and lifts its code
// blocks out behind placeholders.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*docdig.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docdig.Errorf(docdig.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &docdig.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	doc.Find(chromeSelector).Remove()
	main := selectMain(doc)

	result.ContentHTML, err = goquery.OuterHtml(main)
	if err != nil {
		return nil, err
	}

	result.CodeBlocks = liftCodeBlocks(main, fenceNonce())

	result.MarkupHTML, err = goquery.OuterHtml(main)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// selectMain walks the cascade and falls back to the body, then to the
// whole document.
func selectMain(doc *goquery.Document) *goquery.Selection {
	for _, candidate := range mainCandidates {
		if sel := candidate(doc); sel.Length() > 0 {
			return sel
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

func first(selector string) func(*goquery.Document) *goquery.Selection {
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(selector).First()
	}
}

// contentIDDiv matches the first div whose id starts with "content" or "main".
func contentIDDiv(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div[id]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		id, _ := sel.Attr("id")
		return contentIDRe.MatchString(id)
	}).First()
}

// fenceNonce returns a fresh placeholder nonce for one document.
func fenceNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// liftCodeBlocks replaces every <pre> under main with a text placeholder and
// returns the cleaned code behind each one.
func liftCodeBlocks(main *goquery.Selection, nonce string) []docdig.CodeBlock {
	var blocks []docdig.CodeBlock
	main.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		if pre.ParentsFiltered("pre").Length() > 0 {
			return
		}

		source := pre
		code := pre.Find("code").First()
		if code.Length() > 0 {
			source = code
		}

		placeholder := docdig.FencePlaceholder(nonce, len(blocks))
		blocks = append(blocks, docdig.CodeBlock{
			Placeholder: placeholder,
			Language:    detectLanguage(codeClasses(pre, code)),
			Code:        cleanCode(source.Text()),
		})
		pre.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: placeholder})
	})
	return blocks
}

// codeClasses returns the class tokens of the <code> element when it has a
// class attribute, otherwise those of the <pre>.
func codeClasses(pre, code *goquery.Selection) []string {
	if class, ok := code.Attr("class"); ok {
		return strings.Fields(class)
	}
	if class, ok := pre.Attr("class"); ok {
		return strings.Fields(class)
	}
	return nil
}

// detectLanguage prefers a language-X class and otherwise keeps the last
// recognized bare language token.
func detectLanguage(classes []string) string {
	var lang string
	for _, c := range classes {
		if rest, ok := strings.CutPrefix(c, "language-"); ok {
			return rest
		}
		if codeLanguages[c] {
			lang = c
		}
	}
	return lang
}

// cleanCode drops line-number lines and merges glyph-only tree-drawing lines
// into the line that follows them.
func cleanCode(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	cleaned := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		// Checks run on the right-trimmed line so a whitespace-only line is
		// blank rather than a glyph line. The line itself is kept verbatim.
		trimmed := strings.TrimRight(lines[i], " \t\r")
		if lineNumberRe.MatchString(trimmed) {
			continue
		}
		if treeGlyphRe.MatchString(trimmed) && i+1 < len(lines) {
			merged := strings.TrimSpace(trimmed) + " " + strings.TrimLeft(lines[i+1], " \t")
			cleaned = append(cleaned, strings.TrimRight(merged, " \t\r\f\v"))
			i++
			continue
		}
		cleaned = append(cleaned, lines[i])
	}

	return strings.Trim(strings.Join(cleaned, "\n"), "\n")
}

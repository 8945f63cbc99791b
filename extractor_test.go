package docdig_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/docdig"
	"github.com/fwojciec/docdig/goquery"
	"github.com/fwojciec/docdig/htmltomarkdown"
	"github.com/fwojciec/docdig/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("renders a documentation page", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Install Guide</title></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
<h1>Install</h1>
<p>Run the installer.</p>
<pre><code class="language-python">foo
  bar</code></pre>
<p>Done.</p>
</main>
<footer>Copyright</footer>
</body></html>`

		doc := docdig.Extract(goquery.NewExtractor(), htmltomarkdown.NewConverter(), html, "https://example.com/docs/install")

		assert.Equal(t, "https://example.com/docs/install", doc.URL)
		assert.Equal(t, "Install Guide", doc.Title)
		assert.Contains(t, doc.Body, "# Install")
		assert.Contains(t, doc.Body, "Run the installer.")
		assert.Contains(t, doc.Body, "\n```python\nfoo\n  bar\n```\n")
		assert.NotContains(t, doc.Body, "Home")
		assert.NotContains(t, doc.Body, "Copyright")
		assert.NotContains(t, doc.Body, "docdigfence")
		assert.Contains(t, doc.ContentHTML, "<pre>")
	})

	t.Run("strips line numbers and tree glyphs from code", func(t *testing.T) {
		t.Parallel()

		html := "<main><pre><code class=\"language-text\">1\nsrc\n2\n└──\nmain.go</code></pre></main>"

		doc := docdig.Extract(goquery.NewExtractor(), htmltomarkdown.NewConverter(), html, "https://example.com/")

		assert.Equal(t, "```text\nsrc\n└── main.go\n```\n", doc.Body)
	})

	t.Run("keeps placeholder lookalike text in prose", func(t *testing.T) {
		t.Parallel()

		html := `<main><p>see docdigfence0x here</p><pre><code>secret()</code></pre></main>`

		doc := docdig.Extract(goquery.NewExtractor(), htmltomarkdown.NewConverter(), html, "https://example.com/")

		assert.Contains(t, doc.Body, "see docdigfence0x here")
		assert.Equal(t, 1, strings.Count(doc.Body, "secret()"))
		assert.Contains(t, doc.Body, "```\nsecret()\n```\n")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		html := `<title>T</title><article><p>One</p><pre>x</pre><p><strong>Two</strong></p></article>`
		extractor, converter := goquery.NewExtractor(), htmltomarkdown.NewConverter()

		first := docdig.Extract(extractor, converter, html, "https://example.com/")
		second := docdig.Extract(extractor, converter, html, "https://example.com/")

		assert.Equal(t, first, second)
	})

	t.Run("degrades to empty body on extractor error", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(string, string) (*docdig.ExtractResult, error) {
				return nil, errors.New("boom")
			},
		}

		doc := docdig.Extract(extractor, &mock.Converter{}, "<p>x</p>", "https://example.com/a")

		require.NotNil(t, doc)
		assert.Equal(t, &docdig.Document{URL: "https://example.com/a"}, doc)
	})

	t.Run("degrades to empty body on converter error", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(string, string) (*docdig.ExtractResult, error) {
				return &docdig.ExtractResult{Title: "T", ContentHTML: "<p>x</p>", MarkupHTML: "<p>x</p>"}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "", errors.New("boom")
			},
		}

		doc := docdig.Extract(extractor, converter, "<p>x</p>", "https://example.com/a")

		assert.Equal(t, "T", doc.Title)
		assert.Equal(t, "<p>x</p>", doc.ContentHTML)
		assert.Empty(t, doc.Body)
	})

	t.Run("skips conversion of blank markup", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(string, string) (*docdig.ExtractResult, error) {
				return &docdig.ExtractResult{MarkupHTML: "  "}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(string) (string, error) {
				t.Fatal("converter must not be called")
				return "", nil
			},
		}

		doc := docdig.Extract(extractor, converter, "", "https://example.com/a")

		assert.Empty(t, doc.Body)
	})
}

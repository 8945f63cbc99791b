package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docdig"
	"github.com/fwojciec/docdig/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var capturedAt = time.Unix(1700000000, 0)

func testDocument() *docdig.Document {
	return &docdig.Document{
		URL:         "https://x.dev/docs/guide",
		Title:       "Guide: Getting Started",
		Body:        "# Guide\n\nHello, wörld <3\n",
		ContentHTML: "<main><h1>Guide</h1></main>",
	}
}

func newWriter(now time.Time) *fs.Writer {
	return &fs.Writer{Now: func() time.Time { return now }}
}

func TestFormatRecord(t *testing.T) {
	t.Parallel()

	t.Run("markdown has front matter", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FormatRecord(testDocument(), docdig.FormatMarkdown, capturedAt)

		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: Guide- Getting Started\nurl: https://x.dev/docs/guide\ndate_scraped: 1700000000\n---\n# Guide\n\nHello, wörld <3\n", string(got))
	})

	t.Run("json object", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FormatRecord(testDocument(), docdig.FormatJSON, capturedAt)

		require.NoError(t, err)
		assert.Equal(t, `{
  "title": "Guide: Getting Started",
  "url": "https://x.dev/docs/guide",
  "date_scraped": 1700000000,
  "content": "# Guide\n\nHello, wörld <3\n"
}`, string(got))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(got, &decoded))
		assert.Len(t, decoded, 4)
	})

	t.Run("text is the body", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FormatRecord(testDocument(), docdig.FormatText, capturedAt)

		require.NoError(t, err)
		assert.Equal(t, "# Guide\n\nHello, wörld <3\n", string(got))
	})

	t.Run("html is the cleaned fragment", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FormatRecord(testDocument(), docdig.FormatHTML, capturedAt)

		require.NoError(t, err)
		assert.Equal(t, "<main><h1>Guide</h1></main>", string(got))
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := fs.FormatRecord(testDocument(), "pdf", capturedAt)

		require.Error(t, err)
		assert.Equal(t, docdig.EINVALID, docdig.ErrorCode(err))
	})
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		res, err := newWriter(capturedAt).Write(context.Background(), docdig.WriteRequest{
			Dir:      dir,
			Path:     "api/v1/users.md",
			Document: testDocument(),
			Format:   docdig.FormatMarkdown,
		})

		require.NoError(t, err)
		assert.False(t, res.Unchanged)
		assert.NotEmpty(t, res.Hash)

		data, err := os.ReadFile(filepath.Join(dir, "api", "v1", "users.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "url: https://x.dev/docs/guide\n")
	})

	t.Run("overwrites without diff", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.txt")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		_, err := newWriter(capturedAt).Write(context.Background(), docdig.WriteRequest{
			Dir:      dir,
			Path:     "page.txt",
			Document: testDocument(),
			Format:   docdig.FormatText,
		})

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, testDocument().Body, string(data))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		req := docdig.WriteRequest{Dir: dir, Path: "page.json", Document: testDocument(), Format: docdig.FormatJSON}
		w := newWriter(capturedAt)

		first, err := w.Write(context.Background(), req)
		require.NoError(t, err)
		before, err := os.ReadFile(filepath.Join(dir, "page.json"))
		require.NoError(t, err)

		second, err := w.Write(context.Background(), req)
		require.NoError(t, err)
		after, err := os.ReadFile(filepath.Join(dir, "page.json"))
		require.NoError(t, err)

		assert.Equal(t, before, after)
		assert.Equal(t, first.Hash, second.Hash)
	})

	t.Run("diff mode skips identical content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "guide.md")
		req := docdig.WriteRequest{Dir: dir, Path: "guide.md", Document: testDocument(), Format: docdig.FormatMarkdown, Diff: true}

		first, err := newWriter(capturedAt).Write(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, first.Unchanged)

		old := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, os.Chtimes(path, old, old))
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		second, err := newWriter(capturedAt.Add(time.Hour)).Write(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, second.Unchanged)
		assert.Equal(t, first.Hash, second.Hash)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(old))
		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("diff mode writes changed content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		req := docdig.WriteRequest{Dir: dir, Path: "guide.md", Document: testDocument(), Format: docdig.FormatMarkdown, Diff: true}

		_, err := newWriter(capturedAt).Write(context.Background(), req)
		require.NoError(t, err)

		changed := testDocument()
		changed.Body = "# Guide\n\nNew text\n"
		req.Document = changed

		res, err := newWriter(capturedAt).Write(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, res.Unchanged)

		data, err := os.ReadFile(filepath.Join(dir, "guide.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "New text")
	})

	t.Run("diff mode writes missing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		res, err := newWriter(capturedAt).Write(context.Background(), docdig.WriteRequest{
			Dir: dir, Path: "new.md", Document: testDocument(), Format: docdig.FormatMarkdown, Diff: true,
		})

		require.NoError(t, err)
		assert.False(t, res.Unchanged)
		assert.FileExists(t, filepath.Join(dir, "new.md"))
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		_, err := newWriter(capturedAt).Write(context.Background(), docdig.WriteRequest{
			Dir: dir, Path: "a.md", Document: testDocument(), Format: docdig.FormatMarkdown,
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.md", entries[0].Name())
	})

	t.Run("error identifies the path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "api")
		require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0644))

		_, err := newWriter(capturedAt).Write(context.Background(), docdig.WriteRequest{
			Dir: dir, Path: "api/users.md", Document: testDocument(), Format: docdig.FormatMarkdown,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), filepath.Join(dir, "api", "users.md"))
	})

	t.Run("validates request", func(t *testing.T) {
		t.Parallel()

		w := newWriter(capturedAt)

		_, err := w.Write(context.Background(), docdig.WriteRequest{Dir: t.TempDir(), Path: "a.md"})
		assert.Equal(t, docdig.EINVALID, docdig.ErrorCode(err))

		_, err = w.Write(context.Background(), docdig.WriteRequest{Dir: t.TempDir(), Document: testDocument()})
		assert.Equal(t, docdig.EINVALID, docdig.ErrorCode(err))
	})
}

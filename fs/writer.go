// Package fs persists harvested pages and run summaries to the local
// filesystem.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdig"
	"github.com/google/uuid"
)

// capturedAtRe matches the capture timestamp in markdown and JSON records.
// Diff comparison ignores it so re-harvesting unchanged content is a no-op.
var capturedAtRe = regexp.MustCompile(`(?m)^date_scraped: \d+$|"date_scraped": \d+`)

// Ensure Writer implements docdig.Writer at compile time.
var _ docdig.Writer = (*Writer)(nil)

// Writer writes Output Records as files below a seed's output directory.
type Writer struct {
	// Now returns the capture time stamped into records.
	Now func() time.Time
}

// NewWriter creates a new Writer using the wall clock.
func NewWriter() *Writer {
	return &Writer{Now: time.Now}
}

// Write serializes req.Document and writes it to req.Dir/req.Path through a
// temporary file and a rename. In diff mode an existing file with the same
// content is left untouched.
func (w *Writer) Write(ctx context.Context, req docdig.WriteRequest) (docdig.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return docdig.WriteResult{}, err
	}
	if req.Document == nil {
		return docdig.WriteResult{}, docdig.Errorf(docdig.EINVALID, "document required")
	}
	if req.Path == "" {
		return docdig.WriteResult{}, docdig.Errorf(docdig.EINVALID, "output path required")
	}

	content, err := FormatRecord(req.Document, req.Format, w.Now())
	if err != nil {
		return docdig.WriteResult{}, err
	}

	fullPath := filepath.Join(req.Dir, filepath.FromSlash(req.Path))
	result := docdig.WriteResult{Hash: contentHash(content)}

	if req.Diff {
		// A read failure counts as changed.
		if existing, err := os.ReadFile(fullPath); err == nil && contentHash(existing) == result.Hash {
			result.Unchanged = true
			return result, nil
		}
	}

	if err := writeFileAtomic(fullPath, content); err != nil {
		return docdig.WriteResult{}, fmt.Errorf("write %s: %w", fullPath, err)
	}
	return result, nil
}

// FormatRecord serializes a document in the given format.
func FormatRecord(doc *docdig.Document, format docdig.Format, capturedAt time.Time) ([]byte, error) {
	switch format {
	case docdig.FormatMarkdown, "":
		return []byte(FormatMarkdown(doc, capturedAt)), nil
	case docdig.FormatJSON:
		return formatJSON(doc, capturedAt)
	case docdig.FormatText:
		return []byte(doc.Body), nil
	case docdig.FormatHTML:
		return []byte(doc.ContentHTML), nil
	default:
		return nil, docdig.Errorf(docdig.EINVALID, "unknown output format %q", format)
	}
}

// FormatMarkdown formats a document with a front-matter header.
// Colons in the title are replaced so the header stays a flat key list.
func FormatMarkdown(doc *docdig.Document, capturedAt time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: ")
	b.WriteString(strings.ReplaceAll(doc.Title, ":", "-"))
	b.WriteString("\nurl: ")
	b.WriteString(doc.URL)
	b.WriteString("\ndate_scraped: ")
	b.WriteString(strconv.FormatInt(capturedAt.Unix(), 10))
	b.WriteString("\n---\n")
	b.WriteString(doc.Body)
	return b.String()
}

type jsonRecord struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	DateScraped int64  `json:"date_scraped"`
	Content     string `json:"content"`
}

func formatJSON(doc *docdig.Document, capturedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonRecord{
		Title:       doc.Title,
		URL:         doc.URL,
		DateScraped: capturedAt.Unix(),
		Content:     doc.Body,
	}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// contentHash hashes a record with its capture timestamp masked.
func contentHash(content []byte) string {
	masked := capturedAtRe.ReplaceAll(content, []byte("date_scraped"))
	return fmt.Sprintf("%x", xxhash.Sum64(masked))
}

// writeFileAtomic writes data to a temporary sibling of path and renames it
// into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

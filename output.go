package docdig

import (
	"context"
	"strings"
)

// Format is an output serialization.
type Format string

// Supported output formats.
const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatText     Format = "txt"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatMarkdown, FormatJSON, FormatText, FormatHTML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", Errorf(EINVALID, "unknown output format %q (want md, json, txt or html)", s)
}

// Extension returns the file extension for the format, with leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// PathResolver maps a page URL to an output path relative to the seed's
// output directory.
type PathResolver interface {
	// Resolve is a pure function of its arguments. langHint is accepted but
	// does not currently alter the result.
	Resolve(rootURL, pageURL, langHint string, format Format) string
}

// WriteRequest describes one Output Record to persist.
type WriteRequest struct {
	// Dir is the seed's output directory; Path is relative to it.
	Dir  string
	Path string

	Document *Document
	Format   Format

	// Diff skips the write when the existing file holds the same content.
	Diff bool
}

// WriteResult reports what a write did.
type WriteResult struct {
	// Unchanged is true when diff mode left the existing file untouched.
	Unchanged bool

	// Hash is the content hash of the serialized record.
	Hash string
}

// Writer persists Output Records.
type Writer interface {
	// Write creates or replaces at most one file. It never deletes and never
	// leaves a partially written file behind. Errors identify the path.
	Write(ctx context.Context, req WriteRequest) (WriteResult, error)
}

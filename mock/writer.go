package mock

import (
	"context"

	"github.com/fwojciec/docdig"
)

var _ docdig.Writer = (*Writer)(nil)

// Writer is a mock implementation of docdig.Writer.
type Writer struct {
	WriteFn func(ctx context.Context, req docdig.WriteRequest) (docdig.WriteResult, error)
}

func (w *Writer) Write(ctx context.Context, req docdig.WriteRequest) (docdig.WriteResult, error) {
	return w.WriteFn(ctx, req)
}

var _ docdig.PathResolver = (*PathResolver)(nil)

// PathResolver is a mock implementation of docdig.PathResolver.
type PathResolver struct {
	ResolveFn func(rootURL, pageURL, langHint string, format docdig.Format) string
}

func (r *PathResolver) Resolve(rootURL, pageURL, langHint string, format docdig.Format) string {
	return r.ResolveFn(rootURL, pageURL, langHint, format)
}

var _ docdig.Manifest = (*Manifest)(nil)

// Manifest is a mock implementation of docdig.Manifest.
type Manifest struct {
	RecordFn    func(ctx context.Context, rec *docdig.PageRecord) error
	FindPagesFn func(ctx context.Context, seed string) ([]*docdig.PageRecord, error)
}

func (m *Manifest) Record(ctx context.Context, rec *docdig.PageRecord) error {
	return m.RecordFn(ctx, rec)
}

func (m *Manifest) FindPages(ctx context.Context, seed string) ([]*docdig.PageRecord, error) {
	return m.FindPagesFn(ctx, seed)
}

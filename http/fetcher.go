// Package http implements page fetching, sitemap discovery and robots
// policy loading over HTTP.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docdig"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = docdig.DefaultFetchTimeout

// maxBodyBytes bounds how much of a page body is read.
const maxBodyBytes = 32 << 20

// Ensure Fetcher implements docdig.Fetcher at compile time.
var _ docdig.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP GET requests.
// It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (20s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: docdig.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = NewClient(f.timeout, f.userAgent)

	return f
}

// Fetch retrieves the HTML content from the given URL. Redirects are
// followed. A non-2xx status fails with EUNAVAILABLE and a content type
// that is not HTML fails with EINVALID.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docdig.Errorf(docdig.EINVALID, "invalid request for %s: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", docdig.Errorf(docdig.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", docdig.Errorf(docdig.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(strings.ToLower(ct), "html") {
		return "", docdig.Errorf(docdig.EINVALID, "unsupported content type %q for %s", ct, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", docdig.Errorf(docdig.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

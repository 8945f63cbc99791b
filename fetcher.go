package docdig

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch performs one GET, following redirects, and returns the raw body.
	// Non-2xx responses fail with EUNAVAILABLE and non-HTML content types
	// fail with EINVALID. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases idle connections.
	Close() error
}

// DomainLimiter paces requests to a host.
type DomainLimiter interface {
	// Wait blocks until a request to host may proceed. It returns an error
	// only if ctx is done first.
	Wait(ctx context.Context, host string) error
}

package http

import (
	"net/http"
	"time"

	"github.com/fwojciec/docdig"
)

// NewClient returns an HTTP client that follows redirects, gives up after
// timeout, and identifies itself with userAgent on every request.
func NewClient(timeout time.Duration, userAgent string) *http.Client {
	if userAgent == "" {
		userAgent = docdig.DefaultUserAgent
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			next:      http.DefaultTransport,
			userAgent: userAgent,
		},
	}
}

// userAgentTransport sets the User-Agent header unless the request already
// carries one.
type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(req)
}

// isSuccess reports whether status is in the 2xx range.
func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

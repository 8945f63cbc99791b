package http

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/fwojciec/docdig"
	"github.com/temoto/robotstxt"
)

// maxRobotsBodyBytes limits the size of robots.txt responses we will read.
const maxRobotsBodyBytes = 512 * 1024

// Ensure RobotsService implements docdig.RobotsService.
var _ docdig.RobotsService = (*RobotsService)(nil)

// RobotsService loads robots.txt policies over HTTP.
type RobotsService struct {
	client    *http.Client
	userAgent string
}

// NewRobotsService creates a RobotsService that matches rules for userAgent.
// If client is nil, http.DefaultClient is used.
func NewRobotsService(client *http.Client, userAgent string) *RobotsService {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = docdig.DefaultUserAgent
	}
	return &RobotsService{client: client, userAgent: userAgent}
}

// Load fetches /robots.txt on root's host. A request error, a non-2xx
// response or an unparseable body yields docdig.AllowAll.
func (s *RobotsService) Load(ctx context.Context, root string) docdig.RobotsPolicy {
	base, err := url.Parse(root)
	if err != nil || base.Host == "" {
		return docdig.AllowAll
	}
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), http.NoBody)
	if err != nil {
		return docdig.AllowAll
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return docdig.AllowAll
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return docdig.AllowAll
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBodyBytes))
	if err != nil {
		return docdig.AllowAll
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return docdig.AllowAll
	}

	return &robotsPolicy{data: data, userAgent: s.userAgent}
}

// robotsPolicy answers from parsed robots.txt rules.
type robotsPolicy struct {
	data      *robotstxt.RobotsData
	userAgent string
}

func (p *robotsPolicy) Allowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	return p.data.TestAgent(u.RequestURI(), p.userAgent)
}

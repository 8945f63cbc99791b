package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/docdig"
	"golang.org/x/time/rate"
)

var _ docdig.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to each host by at least 1/rps. One
// DomainLimiter is shared by every session of a harvest, so parallel seeds
// on the same host draw from a single budget.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per host with no bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the host's next request slot. Host names are compared
// case-insensitively.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	host = strings.ToLower(host)

	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

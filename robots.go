package docdig

import "context"

// RobotsPolicy answers whether a URL may be fetched.
type RobotsPolicy interface {
	Allowed(url string) bool
}

// RobotsService loads the robots policy governing a site.
type RobotsService interface {
	// Load retrieves the policy for root's host. A policy that cannot be
	// retrieved or parsed is fully permissive; Load never fails.
	Load(ctx context.Context, root string) RobotsPolicy
}

// AllowAll is the permissive policy.
var AllowAll RobotsPolicy = allowAll{}

type allowAll struct{}

func (allowAll) Allowed(string) bool { return true }

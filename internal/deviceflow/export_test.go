package deviceflow

import (
	"context"
	"time"
)

// SetSleepForTest replaces the flow's pacing sleep so tests run instantly
// while still observing the requested durations.
func SetSleepForTest(f *Flow, sleep func(ctx context.Context, d time.Duration) error) {
	f.sleep = sleep
}

// SetEndpointForTest points the authorizer at a test server.
func SetEndpointForTest(g *GitHubAuthorizer, deviceAuthURL, tokenURL string) {
	g.cfg.Endpoint.DeviceAuthURL = deviceAuthURL
	g.cfg.Endpoint.TokenURL = tokenURL
}

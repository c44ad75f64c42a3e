// Package deviceflow implements the OAuth device-authorization-grant state
// machine used by login on terminals without a browser callback.
package deviceflow

import (
	"context"
	"fmt"
	"time"

	"todosync/internal/service"
	"todosync/internal/tokenstore"
)

// State is the linear device-flow state. Authenticated, Expired and Denied
// are terminal: no transition leaves them.
type State int

const (
	StateIdle State = iota
	StateRequestedCode
	StateAwaitingUserAction
	StatePolling
	StateAuthenticated
	StateExpired
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequestedCode:
		return "requested-code"
	case StateAwaitingUserAction:
		return "awaiting-user-action"
	case StatePolling:
		return "polling"
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	case StateDenied:
		return "denied"
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateAuthenticated || s == StateExpired || s == StateDenied
}

// DeviceCode is the authorization server's response to the initial request.
type DeviceCode struct {
	DeviceCode      string
	UserCode        string
	VerificationURI string
	Interval        time.Duration // minimum spacing between token requests
	Expiry          time.Time     // when the device code stops being valid
}

// TokenResponse is one poll result. Exactly one of AccessToken or ErrorCode
// is set on a well-formed response.
type TokenResponse struct {
	AccessToken string
	ErrorCode   string // RFC 8628: authorization_pending, slow_down, expired_token, access_denied
}

// Authorizer abstracts the authorization server endpoints.
type Authorizer interface {
	// RequestDeviceCode obtains a fresh device and user code pair.
	RequestDeviceCode(ctx context.Context) (*DeviceCode, error)

	// RequestToken issues one token request for the device code.
	RequestToken(ctx context.Context, deviceCode string) (*TokenResponse, error)
}

const (
	defaultInterval = 5 * time.Second
	defaultLifetime = 15 * time.Minute

	// slowDownStep is how much the polling interval grows on slow_down.
	slowDownStep = 5 * time.Second
)

// Flow drives one login attempt. One instance per invocation; nothing is
// persisted across runs except the granted token, written through the
// injected store on the transition to Authenticated.
type Flow struct {
	auth  Authorizer
	store tokenstore.Store

	state    State
	code     *DeviceCode
	interval time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a flow in the Idle state.
func New(auth Authorizer, store tokenstore.Store) *Flow {
	return &Flow{
		auth:  auth,
		store: store,
		state: StateIdle,
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// State returns the current state.
func (f *Flow) State() State {
	return f.state
}

// Start requests a device code, moving Idle to RequestedCode.
func (f *Flow) Start(ctx context.Context) error {
	if f.state != StateIdle {
		return fmt.Errorf("start: invalid transition from %s", f.state)
	}
	code, err := f.auth.RequestDeviceCode(ctx)
	if err != nil {
		return fmt.Errorf("failed to request device code: %w", err)
	}
	if code.Interval <= 0 {
		code.Interval = defaultInterval
	}
	if code.Expiry.IsZero() {
		code.Expiry = f.now().Add(defaultLifetime)
	}
	f.code = code
	f.interval = code.Interval
	f.state = StateRequestedCode
	return nil
}

// UserPrompt hands out what the user must be shown and moves RequestedCode
// to AwaitingUserAction. No network activity happens here.
func (f *Flow) UserPrompt() (userCode, verificationURI string, err error) {
	if f.state != StateRequestedCode {
		return "", "", fmt.Errorf("user prompt: invalid transition from %s", f.state)
	}
	f.state = StateAwaitingUserAction
	return f.code.UserCode, f.code.VerificationURI, nil
}

// Poll loops on the token endpoint, never faster than the server-specified
// interval, until the grant is decided. slow_down raises the interval and it
// never goes back down for the rest of the run. On grant the token is
// persisted through the store and returned. Cancellation aborts without
// persisting anything.
func (f *Flow) Poll(ctx context.Context) (string, error) {
	if f.state != StateAwaitingUserAction {
		return "", fmt.Errorf("poll: invalid transition from %s", f.state)
	}
	f.state = StatePolling

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !f.now().Before(f.code.Expiry) {
			f.state = StateExpired
			return "", service.NewError(service.KindAuthExpired,
				"device authorization expired, run login again")
		}

		resp, err := f.auth.RequestToken(ctx, f.code.DeviceCode)
		if err != nil {
			return "", fmt.Errorf("token request failed: %w", err)
		}

		if resp.AccessToken != "" {
			if err := f.store.Set(resp.AccessToken); err != nil {
				return "", fmt.Errorf("failed to save token: %w", err)
			}
			f.state = StateAuthenticated
			return resp.AccessToken, nil
		}

		switch resp.ErrorCode {
		case "authorization_pending":
			// Keep waiting at the current pace.
		case "slow_down":
			f.interval += slowDownStep
		case "expired_token":
			f.state = StateExpired
			return "", service.NewError(service.KindAuthExpired,
				"device authorization expired, run login again")
		case "access_denied":
			f.state = StateDenied
			return "", service.NewError(service.KindAuthDenied,
				"authorization denied by user")
		default:
			return "", fmt.Errorf("unexpected authorization server response: %q", resp.ErrorCode)
		}

		if err := f.sleep(ctx, f.interval); err != nil {
			return "", err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package deviceflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

const requestTimeout = 30 * time.Second

// GitHubAuthorizer implements Authorizer against GitHub's device endpoints.
type GitHubAuthorizer struct {
	cfg        *oauth2.Config
	httpClient *http.Client
}

// NewGitHubAuthorizer creates an authorizer for the given OAuth app client ID.
func NewGitHubAuthorizer(clientID string) *GitHubAuthorizer {
	return NewGitHubAuthorizerWithClient(clientID, &http.Client{Timeout: requestTimeout})
}

// NewGitHubAuthorizerWithClient allows injecting the HTTP client (for tests).
func NewGitHubAuthorizerWithClient(clientID string, httpClient *http.Client) *GitHubAuthorizer {
	return &GitHubAuthorizer{
		cfg: &oauth2.Config{
			ClientID: clientID,
			Endpoint: githuboauth.Endpoint,
		},
		httpClient: httpClient,
	}
}

// RequestDeviceCode implements Authorizer via the oauth2 device endpoint.
func (g *GitHubAuthorizer) RequestDeviceCode(ctx context.Context) (*DeviceCode, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	resp, err := g.cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, err
	}
	return &DeviceCode{
		DeviceCode:      resp.DeviceCode,
		UserCode:        resp.UserCode,
		VerificationURI: resp.VerificationURI,
		Interval:        time.Duration(resp.Interval) * time.Second,
		Expiry:          resp.Expiry,
	}, nil
}

// RequestToken implements Authorizer. The token endpoint answers 200 for
// both grants and in-protocol errors, so the error code is carried in the
// body rather than the status.
func (g *GitHubAuthorizer) RequestToken(ctx context.Context, deviceCode string) (*TokenResponse, error) {
	form := url.Values{
		"client_id":   {g.cfg.ClientID},
		"device_code": {deviceCode},
		"grant_type":  {"urn:ietf:params:oauth:grant-type:device_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.cfg.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned HTTP %d", resp.StatusCode)
	}

	var decoded struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("invalid token endpoint response: %w", err)
	}
	return &TokenResponse{
		AccessToken: decoded.AccessToken,
		ErrorCode:   decoded.Error,
	}, nil
}

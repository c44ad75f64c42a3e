package commands_test

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todosync/internal/commands"
	"todosync/internal/config"
	"todosync/internal/deviceflow"
	"todosync/internal/exitcode"
	"todosync/internal/tokenstore"
)

// grantAuthorizer answers the first token request with the given outcome, so
// the flow never has to wait out a polling interval.
type grantAuthorizer struct {
	token     string
	errorCode string
}

func (g *grantAuthorizer) RequestDeviceCode(ctx context.Context) (*deviceflow.DeviceCode, error) {
	return &deviceflow.DeviceCode{
		DeviceCode:      "dev-code",
		UserCode:        "ABCD-1234",
		VerificationURI: "https://github.com/login/device",
		Interval:        time.Second,
		Expiry:          time.Now().Add(time.Hour),
	}, nil
}

func (g *grantAuthorizer) RequestToken(ctx context.Context, deviceCode string) (*deviceflow.TokenResponse, error) {
	return &deviceflow.TokenResponse{AccessToken: g.token, ErrorCode: g.errorCode}, nil
}

func loginWithAuthorizer(auth deviceflow.Authorizer) *commands.LoginCmd {
	return &commands.LoginCmd{
		NewFlow: func(store tokenstore.Store) *deviceflow.Flow {
			return deviceflow.New(auth, store)
		},
	}
}

func TestLogin_PersistsTokenOnGrant(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	cmd := loginWithAuthorizer(&grantAuthorizer{token: "gho_granted"})

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code, errOut.String())
	assert.Contains(t, out.String(), "Please visit: https://github.com/login/device\n")
	assert.Contains(t, out.String(), "and enter code: ABCD-1234\n")
	assert.Contains(t, out.String(), "✓ Authentication complete\n")

	token, ok, err := tokenstore.NewFileStore(cfg.TokenPath()).Get()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "gho_granted", token)
}

func TestLogin_AlreadyLoggedIn(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	require.NoError(t, tokenstore.NewFileStore(cfg.TokenPath()).Set("gho_existing"))

	// No flow injected: an already stored token must short-circuit before
	// any network activity.
	var out, errOut bytes.Buffer
	code := (&commands.LoginCmd{}).Run(context.Background(), cfg, nil, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "already logged in\n", out.String())
}

func TestLogin_Denied(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	cmd := loginWithAuthorizer(&grantAuthorizer{errorCode: "access_denied"})

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, nil, &out, &errOut)

	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, errOut.String(), "denied")

	_, ok, err := tokenstore.NewFileStore(cfg.TokenPath()).Get()
	require.NoError(t, err)
	assert.False(t, ok, "no token may be stored on denial")
}

func TestLogin_Expired(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	cmd := loginWithAuthorizer(&grantAuthorizer{errorCode: "expired_token"})

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, nil, &out, &errOut)

	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, errOut.String(), "expired")
}

func TestLogout_ClearsToken(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	store := tokenstore.NewFileStore(cfg.TokenPath())
	require.NoError(t, store.Set("gho_existing"))

	var out, errOut bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", out.String())

	_, err := os.Stat(cfg.TokenPath())
	assert.True(t, os.IsNotExist(err))
}

func TestLogout_NotLoggedIn(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	var out, errOut bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "not logged in\n", out.String())
}

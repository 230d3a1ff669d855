// ABOUTME: Auth controller owning login, logout, and token lifecycle
// ABOUTME: Validates stored tokens and consumes one-time OAuth redirect URLs

package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/wardrobeapp/wardrobe-cli/internal/client"
	"github.com/wardrobeapp/wardrobe-cli/internal/session"
)

// State is the session lifecycle state.
type State int

const (
	// StateAnonymous means no token is held.
	StateAnonymous State = iota
	// StatePendingValidation means a token is held but not yet confirmed
	// by the server. Pending is never enough to show authenticated UI.
	StatePendingValidation
	// StateAuthenticated means the token was validated and user is set.
	StateAuthenticated
)

// LoggedOutMessage is shown when logout is announced.
const LoggedOutMessage = "You have been logged out."

// ExpiredMessage is shown when boot-time validation rejects a stored token.
const ExpiredMessage = "Session expired, please log in again."

// Controller owns the session: the token, the validated user, and the
// provider status map. It is the only writer of any of them.
type Controller struct {
	client    *client.Client
	store     *session.Store
	state     State
	token     string
	user      *client.User
	providers map[string]client.Provider
}

// New creates a controller, deriving the initial state from durable
// storage: a stored token puts the session in pending-validation.
func New(c *client.Client, store *session.Store) *Controller {
	ctrl := &Controller{client: c, store: store}
	if token, ok := store.Get(session.TokenKey); ok {
		ctrl.token = token
		ctrl.state = StatePendingValidation
	}
	return ctrl
}

// Token returns the held token; it satisfies client.TokenSource.
func (c *Controller) Token() string {
	return c.token
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// User returns the validated user, or nil before validation.
func (c *Controller) User() *client.User {
	return c.user
}

// ConsumeRedirect captures a one-time token from an OAuth redirect URL.
// It strips exactly the token, provider, and username parameters, persists
// the token, and returns the cleaned URL. The second return reports
// whether a token was captured; a URL without a token passes through
// untouched, so running boot twice cannot replay the capture.
func (c *Controller) ConsumeRedirect(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, false
	}

	params := parsed.Query()
	token := params.Get("token")
	if token == "" {
		return rawURL, false
	}

	c.token = token
	c.state = StatePendingValidation
	c.store.Set(session.TokenKey, token)

	params.Del("token")
	params.Del("provider")
	params.Del("username")
	parsed.RawQuery = params.Encode()

	return parsed.String(), true
}

// Login authenticates with the unauthenticated login endpoint, stores the
// returned token, and immediately validates it. A failure leaves session
// state untouched.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	token, err := c.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return c.adoptToken(ctx, token)
}

// Register creates an account and proceeds exactly like Login.
func (c *Controller) Register(ctx context.Context, username, password string) error {
	token, err := c.client.Register(ctx, username, password)
	if err != nil {
		return err
	}
	return c.adoptToken(ctx, token)
}

func (c *Controller) adoptToken(ctx context.Context, token string) error {
	c.token = token
	c.state = StatePendingValidation
	if err := c.store.Set(session.TokenKey, token); err != nil {
		return err
	}
	return c.Validate(ctx)
}

// Validate confirms the held token against /auth/me. Success populates the
// user; failure tears the session down to anonymous, storage included, so a
// stale token can never show authenticated UI.
func (c *Controller) Validate(ctx context.Context) error {
	user, err := c.client.Me(ctx)
	if err != nil {
		c.Logout(false)
		return err
	}
	c.user = user
	c.state = StateAuthenticated
	return nil
}

// Logout clears token and user from memory and storage. It is
// unconditional and idempotent. The returned message is empty unless
// announce is set.
func (c *Controller) Logout(announce bool) string {
	c.token = ""
	c.user = nil
	c.state = StateAnonymous
	c.store.Remove(session.TokenKey)

	if announce {
		return LoggedOutMessage
	}
	return ""
}

// LoadProviderStatus refreshes the provider map. Best effort: any failure
// leaves all providers unconfigured rather than blocking boot.
func (c *Controller) LoadProviderStatus(ctx context.Context) {
	status, err := c.client.ProviderStatus(ctx)
	if err != nil || status == nil {
		c.providers = map[string]client.Provider{}
		return
	}
	c.providers = status
}

// Providers returns the last loaded provider status map.
func (c *Controller) Providers() map[string]client.Provider {
	return c.providers
}

// StartSocialLogin returns the provider's authorization URL for the caller
// to navigate to. An unconfigured provider is refused locally, naming its
// missing settings, without any network call.
func (c *Controller) StartSocialLogin(ctx context.Context, provider, frontRedirect string) (string, error) {
	if info, ok := c.providers[provider]; ok && !info.Configured {
		name := info.DisplayName
		if name == "" {
			name = provider
		}
		return "", fmt.Errorf("%s login is not configured; set %s", name, strings.Join(info.RequiredEnv, ", "))
	}

	start, err := c.client.StartSocialLogin(ctx, provider, frontRedirect)
	if err != nil {
		return "", err
	}
	if start.AuthorizationURL == "" {
		return "", fmt.Errorf("no authorization URL returned for %s", provider)
	}
	return start.AuthorizationURL, nil
}

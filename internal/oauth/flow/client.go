// Package flow implements the authorization-flow engine: one engine
// instance drives one authorization flow at a time, owning its CSRF state
// and PKCE verifier, and delegating wire-shape decisions to the provider
// descriptor and network execution to the requester.
package flow

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/oauthkit/oauthkit/internal/logger"
	"github.com/oauthkit/oauthkit/internal/oauth/models"
	"github.com/oauthkit/oauthkit/internal/oauth/provider"
	"github.com/oauthkit/oauthkit/internal/requester"
	"go.uber.org/zap"
)

const (
	stateEntropyBytes    = 32
	verifierEntropyBytes = 64
)

// Config holds everything one flow engine needs. ClientSecret may be
// empty only when UsePKCE is set.
type Config struct {
	Provider     provider.Descriptor
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	UsePKCE      bool
}

// AuthOptions carries the optional parameters of AuthorizationURL.
type AuthOptions struct {
	// Scopes overrides the engine and descriptor scopes for this flow.
	Scopes []string
	// State substitutes a caller-chosen value for the generated CSRF
	// state.
	State string
	// Extra are additional provider-specific authorization parameters.
	// A caller-supplied "state" here is overridden by the engine's state.
	Extra map[string]string
}

// Client is the blocking flow engine. One instance serves one in-flight
// flow; it is not safe for concurrent use. Callers handling many pending
// user sessions create one Client per session.
type Client struct {
	cfg  Config
	doer requester.Doer

	state    string
	verifier string
}

// NewClient validates the configuration and builds a flow engine. A nil
// doer falls back to the production HTTP requester.
func NewClient(cfg Config, doer requester.Doer) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id is required", ErrConfiguration)
	}
	if cfg.Provider.Name == "" {
		return nil, fmt.Errorf("%w: provider descriptor is required", ErrConfiguration)
	}
	if cfg.ClientSecret == "" && !cfg.UsePKCE {
		return nil, fmt.Errorf("%w: client_secret is required unless PKCE is enabled", ErrConfiguration)
	}
	if doer == nil {
		doer = requester.NewHTTPRequester()
	}
	return &Client{cfg: cfg, doer: doer}, nil
}

// Provider returns the descriptor the engine was built with.
func (c *Client) Provider() provider.Descriptor { return c.cfg.Provider }

// AuthorizationURL builds the authorization URL and arms the flow: the
// CSRF state, and the PKCE verifier when enabled, are generated and held
// until the next code exchange consumes them. No network call occurs.
func (c *Client) AuthorizationURL(opts AuthOptions) (string, error) {
	u, err := url.Parse(c.cfg.Provider.AuthorizationEndpoint)
	if err != nil {
		return "", fmt.Errorf("%w: bad authorization endpoint: %v", ErrConfiguration, err)
	}

	c.state = opts.State
	if c.state == "" {
		c.state = GenerateState()
	}

	q := u.Query()
	for key, value := range opts.Extra {
		q.Set(key, value)
	}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(c.scopesFor(opts.Scopes), " "))

	if c.cfg.UsePKCE {
		c.verifier = GenerateCodeVerifier()
		q.Set("code_challenge", CodeChallenge(c.verifier))
		q.Set("code_challenge_method", "S256")
	}

	// The engine's state wins over anything a parameter merge produced.
	q.Set("state", c.state)
	u.RawQuery = q.Encode()

	logger.Debug("authorization flow armed",
		zap.String("provider", c.cfg.Provider.Name),
		zap.Bool("pkce", c.cfg.UsePKCE),
	)
	return u.String(), nil
}

// ExchangeCode trades the authorization code for a token set, validating
// the callback state when one is supplied. Use ExchangeCodeUnvalidated to
// skip validation deliberately.
func (c *Client) ExchangeCode(ctx context.Context, code, state string) (*models.TokenSet, error) {
	return c.exchangeCode(ctx, code, state, true)
}

// ExchangeCodeUnvalidated performs the exchange without state validation.
// The stored state and verifier are still consumed.
func (c *Client) ExchangeCodeUnvalidated(ctx context.Context, code string) (*models.TokenSet, error) {
	return c.exchangeCode(ctx, code, "", false)
}

func (c *Client) exchangeCode(ctx context.Context, code, state string, validate bool) (*models.TokenSet, error) {
	if validate && state != "" {
		if c.state == "" {
			return nil, fmt.Errorf("%w: no state was stored for validation", ErrInvalidState)
		}
		if state != c.state {
			return nil, fmt.Errorf("%w: state parameter mismatch, possible CSRF attack", ErrInvalidState)
		}
	}

	cred := c.credentials()
	var req *provider.Request
	if c.cfg.UsePKCE {
		if c.verifier == "" {
			return nil, fmt.Errorf("%w: PKCE enabled but no code verifier available", ErrAuthorization)
		}
		req = c.cfg.Provider.ExchangePKCERequest(cred, code, c.verifier)
	} else {
		req = c.cfg.Provider.ExchangeRequest(cred, code)
	}

	// The exchange reaches the network: state and verifier are consumed
	// regardless of the outcome.
	c.state, c.verifier = "", ""

	raw, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange: %v", ErrAuthorization, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: provider returned an empty token response", ErrAuthorization)
	}
	return models.TokenSetFromMap(raw), nil
}

// Refresh trades a refresh token for a fresh token set.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*models.TokenSet, error) {
	if c.cfg.Provider.TokenEndpoint == "" {
		return nil, fmt.Errorf("%w: %s does not support token refresh",
			ErrUnsupportedOperation, c.cfg.Provider.DisplayName)
	}
	raw, err := c.doer.Do(ctx, c.cfg.Provider.RefreshRequest(c.credentials(), refreshToken))
	if err != nil {
		return nil, fmt.Errorf("%w: refresh: %v", ErrToken, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: provider returned an empty token response", ErrToken)
	}
	return models.TokenSetFromMap(raw), nil
}

// Revoke invalidates an access or refresh token. Success means the
// provider answered the request; revocation payloads vary too much across
// providers to inspect further.
func (c *Client) Revoke(ctx context.Context, token string) (bool, error) {
	if !c.cfg.Provider.SupportsRevocation() {
		return false, fmt.Errorf("%w: %s does not support token revocation",
			ErrUnsupportedOperation, c.cfg.Provider.DisplayName)
	}
	if _, err := c.doer.Do(ctx, c.cfg.Provider.RevokeRequest(c.credentials(), token)); err != nil {
		return false, fmt.Errorf("%w: revoke: %v", ErrToken, err)
	}
	return true, nil
}

// UserInfo fetches the normalized identity record for an access token.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (*models.UserInfo, error) {
	if !c.cfg.Provider.SupportsUserInfo() {
		return nil, fmt.Errorf("%w: %s does not support user info retrieval",
			ErrUnsupportedOperation, c.cfg.Provider.DisplayName)
	}
	raw, err := c.doer.Do(ctx, c.cfg.Provider.UserInfoRequest(accessToken))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: provider returned an empty user info response", ErrUserInfo)
	}
	return models.UserInfoFromMap(raw), nil
}

// FlowState exposes the in-flight CSRF state and PKCE verifier so web
// adapters can serialize them into a session between the redirect and the
// callback.
func (c *Client) FlowState() (state, verifier string) {
	return c.state, c.verifier
}

// RestoreFlowState rearms the engine with state previously captured by
// FlowState, typically in a fresh engine instance handling the callback
// request.
func (c *Client) RestoreFlowState(state, verifier string) {
	c.state = state
	c.verifier = verifier
}

func (c *Client) credentials() provider.Credentials {
	return provider.Credentials{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURI:  c.cfg.RedirectURI,
	}
}

func (c *Client) scopesFor(override []string) []string {
	if len(override) > 0 {
		return override
	}
	if len(c.cfg.Scopes) > 0 {
		return c.cfg.Scopes
	}
	return c.cfg.Provider.DefaultScopes
}

// GenerateState produces a cryptographically random URL-safe CSRF state.
func GenerateState() string {
	return randomToken(stateEntropyBytes)
}

// GenerateCodeVerifier produces a cryptographically random URL-safe PKCE
// code verifier.
func GenerateCodeVerifier() string {
	return randomToken(verifierEntropyBytes)
}

// CodeChallenge derives the S256 code challenge for a verifier:
// base64url without padding of the verifier's SHA-256 digest.
func CodeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform entropy source is
		// broken; nothing sensible can continue.
		panic(fmt.Sprintf("flow: reading random bytes: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

package flow

import (
	"context"

	"github.com/oauthkit/oauthkit/internal/oauth/models"
	"github.com/oauthkit/oauthkit/internal/requester"
)

// TokenResult is the outcome of an asynchronous exchange or refresh.
type TokenResult struct {
	Token *models.TokenSet
	Err   error
}

// RevokeResult is the outcome of an asynchronous revocation.
type RevokeResult struct {
	Revoked bool
	Err     error
}

// UserInfoResult is the outcome of an asynchronous identity fetch.
type UserInfoResult struct {
	User *models.UserInfo
	Err  error
}

// AsyncClient is the non-blocking execution mode of the flow engine. It
// shares every decision (state validation, PKCE gating, request shaping,
// error mapping) with Client by delegation; only the network call is
// awaited on a channel instead of blocking the caller. It adds no
// ordering or retry behavior, and the single-flow-per-instance discipline
// of Client applies unchanged: start one operation at a time.
type AsyncClient struct {
	client *Client
}

// NewAsyncClient validates the configuration and builds a non-blocking
// flow engine.
func NewAsyncClient(cfg Config, doer requester.Doer) (*AsyncClient, error) {
	c, err := NewClient(cfg, doer)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{client: c}, nil
}

// Client exposes the underlying blocking engine, e.g. for FlowState
// bridging.
func (a *AsyncClient) Client() *Client { return a.client }

// AuthorizationURL builds the authorization URL. URL construction never
// touches the network, so it stays synchronous in both modes.
func (a *AsyncClient) AuthorizationURL(opts AuthOptions) (string, error) {
	return a.client.AuthorizationURL(opts)
}

// ExchangeCode performs the code exchange off the caller's goroutine. The
// returned channel delivers exactly one result and is then closed.
func (a *AsyncClient) ExchangeCode(ctx context.Context, code, state string) <-chan TokenResult {
	ch := make(chan TokenResult, 1)
	go func() {
		defer close(ch)
		tok, err := a.client.ExchangeCode(ctx, code, state)
		ch <- TokenResult{Token: tok, Err: err}
	}()
	return ch
}

// Refresh performs a token refresh off the caller's goroutine.
func (a *AsyncClient) Refresh(ctx context.Context, refreshToken string) <-chan TokenResult {
	ch := make(chan TokenResult, 1)
	go func() {
		defer close(ch)
		tok, err := a.client.Refresh(ctx, refreshToken)
		ch <- TokenResult{Token: tok, Err: err}
	}()
	return ch
}

// Revoke performs a token revocation off the caller's goroutine.
func (a *AsyncClient) Revoke(ctx context.Context, token string) <-chan RevokeResult {
	ch := make(chan RevokeResult, 1)
	go func() {
		defer close(ch)
		ok, err := a.client.Revoke(ctx, token)
		ch <- RevokeResult{Revoked: ok, Err: err}
	}()
	return ch
}

// UserInfo performs an identity fetch off the caller's goroutine.
func (a *AsyncClient) UserInfo(ctx context.Context, accessToken string) <-chan UserInfoResult {
	ch := make(chan UserInfoResult, 1)
	go func() {
		defer close(ch)
		user, err := a.client.UserInfo(ctx, accessToken)
		ch <- UserInfoResult{User: user, Err: err}
	}()
	return ch
}

package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oauthkit/oauthkit/internal/oauth/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asyncGoogleClient(t *testing.T, doer *recordingDoer) *AsyncClient {
	t.Helper()
	desc, err := provider.Resolve("google")
	require.NoError(t, err)
	client, err := NewAsyncClient(Config{
		Provider:     desc,
		ClientID:     "abc",
		ClientSecret: "shhh",
		RedirectURI:  "http://localhost:8080/callback",
	}, doer)
	require.NoError(t, err)
	return client
}

func awaitToken(t *testing.T, ch <-chan TokenResult) TokenResult {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for async result")
		return TokenResult{}
	}
}

func TestAsyncExchangeCode(t *testing.T) {
	doer := &recordingDoer{response: tokenResponse()}
	client := asyncGoogleClient(t, doer)

	_, err := client.AuthorizationURL(AuthOptions{State: "st"})
	require.NoError(t, err)

	res := awaitToken(t, client.ExchangeCode(context.Background(), "authcode", "st"))
	require.NoError(t, res.Err)
	assert.Equal(t, "at-123", res.Token.AccessToken)
}

func TestAsyncExchangeCodePropagatesErrors(t *testing.T) {
	doer := &recordingDoer{err: errors.New("boom")}
	client := asyncGoogleClient(t, doer)

	res := awaitToken(t, client.ExchangeCode(context.Background(), "authcode", ""))
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrAuthorization)
}

func TestAsyncRefreshAndRevoke(t *testing.T) {
	doer := &recordingDoer{response: tokenResponse()}
	client := asyncGoogleClient(t, doer)

	res := awaitToken(t, client.Refresh(context.Background(), "rt"))
	require.NoError(t, res.Err)
	assert.Equal(t, "at-123", res.Token.AccessToken)

	select {
	case rev := <-client.Revoke(context.Background(), "at-123"):
		require.NoError(t, rev.Err)
		assert.True(t, rev.Revoked)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for revoke result")
	}
}

func TestAsyncUserInfo(t *testing.T) {
	doer := &recordingDoer{response: map[string]any{"id": "u-1"}}
	client := asyncGoogleClient(t, doer)

	select {
	case res := <-client.UserInfo(context.Background(), "at-123"):
		require.NoError(t, res.Err)
		assert.Equal(t, "u-1", res.User.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for user info result")
	}
}

func TestAsyncChannelsAreBufferedAndClosed(t *testing.T) {
	doer := &recordingDoer{response: tokenResponse()}
	client := asyncGoogleClient(t, doer)

	ch := client.Refresh(context.Background(), "rt")
	time.Sleep(50 * time.Millisecond)

	// The result is buffered; reading late must not deadlock and the
	// channel must be closed afterwards.
	res, ok := <-ch
	assert.True(t, ok)
	require.NoError(t, res.Err)

	_, ok = <-ch
	assert.False(t, ok, "channel should be closed after the single result")
}

package provider

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{
	ClientID:     "cid",
	ClientSecret: "secret",
	RedirectURI:  "http://localhost/cb",
}

func TestStandardExchangeShape(t *testing.T) {
	req := Google().ExchangeRequest(testCreds, "the-code")

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://oauth2.googleapis.com/token", req.URL)
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header["Content-Type"])
	assert.Equal(t, "cid", req.Form.Get("client_id"))
	assert.Equal(t, "secret", req.Form.Get("client_secret"))
	assert.Equal(t, "the-code", req.Form.Get("code"))
	assert.Equal(t, "http://localhost/cb", req.Form.Get("redirect_uri"))
	assert.Equal(t, "authorization_code", req.Form.Get("grant_type"))
}

func TestPKCEExchangeOmitsEmptySecret(t *testing.T) {
	public := Credentials{ClientID: "cid", RedirectURI: "http://localhost/cb"}
	req := Google().ExchangePKCERequest(public, "the-code", "the-verifier")

	assert.Equal(t, "the-verifier", req.Form.Get("code_verifier"))
	assert.NotContains(t, req.Form, "client_secret")

	confidential := Google().ExchangePKCERequest(testCreds, "the-code", "the-verifier")
	assert.Equal(t, "secret", confidential.Form.Get("client_secret"))
}

func TestGitHubTokenCallsCarryJSONAccept(t *testing.T) {
	gh := GitHub()

	exchange := gh.ExchangeRequest(testCreds, "the-code")
	assert.Equal(t, "application/json", exchange.Header["Accept"])

	refresh := gh.RefreshRequest(testCreds, "the-refresh")
	assert.Equal(t, "application/json", refresh.Header["Accept"])
}

func TestGitHubRevokeShape(t *testing.T) {
	req := GitHub().RevokeRequest(testCreds, "the-token")

	require.NotNil(t, req)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "https://api.github.com/applications/cid/token", req.URL)
	assert.Equal(t, map[string]any{"access_token": "the-token"}, req.JSON)
	require.NotNil(t, req.BasicAuth)
	assert.Equal(t, "cid", req.BasicAuth.Username)
	assert.Equal(t, "secret", req.BasicAuth.Password)
}

func TestFacebookExchangeUsesGETWithQuery(t *testing.T) {
	req := Facebook().ExchangeRequest(testCreds, "the-code")

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Nil(t, req.Form)
	assert.Equal(t, "the-code", req.Query.Get("code"))
	assert.Equal(t, "secret", req.Query.Get("client_secret"))
}

func TestFacebookRevokeDeletesPermissions(t *testing.T) {
	req := Facebook().RevokeRequest(testCreds, "the-token")

	require.NotNil(t, req)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Contains(t, req.URL, "/me/permissions")
	assert.Equal(t, "the-token", req.Query.Get("access_token"))
}

func TestFacebookUserInfoRequestsFields(t *testing.T) {
	req := Facebook().UserInfoRequest("at")

	require.NotNil(t, req)
	assert.Contains(t, req.Query.Get("fields"), "email")
	assert.Equal(t, "Bearer at", req.Header["Authorization"])
}

func TestTwitterAuthenticatesWithBasicAuth(t *testing.T) {
	tw := Twitter()

	for name, req := range map[string]*Request{
		"exchange": tw.ExchangeRequest(testCreds, "the-code"),
		"pkce":     tw.ExchangePKCERequest(testCreds, "the-code", "v"),
		"refresh":  tw.RefreshRequest(testCreds, "the-refresh"),
		"revoke":   tw.RevokeRequest(testCreds, "the-token"),
	} {
		require.NotNil(t, req, name)
		require.NotNil(t, req.BasicAuth, name)
		assert.Equal(t, "cid", req.BasicAuth.Username, name)
		assert.Equal(t, "secret", req.BasicAuth.Password, name)
		assert.NotContains(t, req.Form, "client_secret", name)
	}
}

func TestAppleRevokeCarriesTokenTypeHint(t *testing.T) {
	req := Apple().RevokeRequest(testCreds, "the-token")

	require.NotNil(t, req)
	assert.Equal(t, "access_token", req.Form.Get("token_type_hint"))
}

func TestUnsupportedOperationsReturnNilRequest(t *testing.T) {
	assert.Nil(t, LinkedIn().RevokeRequest(testCreds, "t"))
	assert.Nil(t, Apple().UserInfoRequest("at"))
}

func TestStandardRefreshShape(t *testing.T) {
	req := Discord().RefreshRequest(testCreds, "the-refresh")

	assert.Equal(t, "https://discord.com/api/oauth2/token", req.URL)
	assert.Equal(t, "refresh_token", req.Form.Get("grant_type"))
	assert.Equal(t, "the-refresh", req.Form.Get("refresh_token"))
}

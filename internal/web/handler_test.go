package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/oauthkit/oauthkit/internal/config"
	"github.com/oauthkit/oauthkit/internal/oauth/models"
	"github.com/oauthkit/oauthkit/internal/oauth/provider"
	"github.com/oauthkit/oauthkit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDoer answers token and identity requests by URL.
type scriptedDoer struct {
	responses map[string]map[string]any
	calls     []*provider.Request
}

func (d *scriptedDoer) Do(_ context.Context, req *provider.Request) (map[string]any, error) {
	d.calls = append(d.calls, req)
	if resp, ok := d.responses[req.URL]; ok {
		return resp, nil
	}
	return map[string]any{}, nil
}

func githubDoer() *scriptedDoer {
	return &scriptedDoer{responses: map[string]map[string]any{
		"https://github.com/login/oauth/access_token": {
			"access_token": "gho_abc",
			"token_type":   "bearer",
			"scope":        "read:user",
		},
		"https://api.github.com/user": {
			"id":    float64(42),
			"login": "octocat",
		},
	}}
}

func newTestHandler(t *testing.T, doer *scriptedDoer, store storage.TokenStore) *Handler {
	t.Helper()
	h, err := NewHandler(config.OAuthConfig{
		Provider:     "github",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/auth/callback",
	}, doer, store, nil, nil)
	require.NoError(t, err)
	return h
}

func TestHandleLoginRedirectsAndParksFlow(t *testing.T) {
	h := newTestHandler(t, githubDoer(), nil)

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://github.com/login/oauth/authorize"))

	u, err := url.Parse(location)
	require.NoError(t, err)
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.NotEmpty(t, u.Query().Get("state"))
	assert.Equal(t, 1, h.PendingCount())
}

func TestCallbackCompletesFlowAndStoresTokens(t *testing.T) {
	doer := githubDoer()
	store := storage.NewMemoryStore()
	h := newTestHandler(t, doer, store)

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	u, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := u.Query().Get("state")

	rec = httptest.NewRecorder()
	h.HandleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?code=authcode&state="+state, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "github", body["provider"])
	assert.Equal(t, "42", body["user_id"])

	tokens, err := store.Get("42")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, "gho_abc", tokens.AccessToken)
	assert.Equal(t, 0, h.PendingCount())
}

func TestCallbackUnknownStateRejected(t *testing.T) {
	h := newTestHandler(t, githubDoer(), nil)

	rec := httptest.NewRecorder()
	h.HandleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?code=authcode&state=forged", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_state", body["error"])
}

func TestCallbackProviderErrorPassedThrough(t *testing.T) {
	h := newTestHandler(t, githubDoer(), nil)

	rec := httptest.NewRecorder()
	h.HandleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?error=access_denied&error_description=user+said+no", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "access_denied", body["error"])
	assert.Equal(t, "user said no", body["error_description"])
}

func TestCallbackMissingCode(t *testing.T) {
	h := newTestHandler(t, githubDoer(), nil)

	rec := httptest.NewRecorder()
	h.HandleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?state=x", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRoutesServesBothEndpoints(t *testing.T) {
	h := newTestHandler(t, githubDoer(), nil)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/callback", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestOnSuccessHookInvoked(t *testing.T) {
	doer := githubDoer()
	var gotUser string
	h, err := NewHandler(config.OAuthConfig{
		Provider:     "github",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/auth/callback",
	}, doer, nil, nil, func(userID string, _ *models.TokenSet) {
		gotUser = userID
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	u, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	h.HandleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?code=authcode&state="+u.Query().Get("state"), nil))

	assert.Equal(t, "42", gotUser)
}

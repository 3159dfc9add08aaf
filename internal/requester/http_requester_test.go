package requester

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/oauthkit/oauthkit/internal/oauth/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoFormPost(t *testing.T) {
	var gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at"}`))
	}))
	defer server.Close()

	req := &provider.Request{
		Method: http.MethodPost,
		URL:    server.URL,
		Header: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		Form:   url.Values{"code": {"abc"}, "grant_type": {"authorization_code"}},
	}

	payload, err := NewHTTPRequester().Do(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Contains(t, gotBody, "code=abc")
	assert.Equal(t, "at", payload["access_token"])
}

func TestDoAppendsQueryParameters(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	req := &provider.Request{
		Method: http.MethodGet,
		URL:    server.URL + "?existing=1",
		Query:  url.Values{"code": {"abc"}},
	}

	_, err := NewHTTPRequester().Do(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "1", gotQuery.Get("existing"))
	assert.Equal(t, "abc", gotQuery.Get("code"))
}

func TestDoJSONBodyAndBasicAuth(t *testing.T) {
	var gotContentType, gotBody string
	var gotUser, gotPass string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotUser, gotPass, _ = r.BasicAuth()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req := &provider.Request{
		Method:    http.MethodDelete,
		URL:       server.URL,
		JSON:      map[string]any{"access_token": "at"},
		BasicAuth: &provider.BasicAuth{Username: "cid", Password: "secret"},
	}

	payload, err := NewHTTPRequester().Do(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"access_token":"at"}`, gotBody)
	assert.Equal(t, "cid", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.NotNil(t, payload)
	assert.Empty(t, payload, "empty body parses to an empty map")
}

func TestDoOAuthErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"code expired"}`))
	}))
	defer server.Close()

	_, err := NewHTTPRequester().Do(context.Background(), &provider.Request{
		Method: http.MethodPost,
		URL:    server.URL,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
	assert.Contains(t, err.Error(), "code expired")
	assert.Contains(t, err.Error(), "400")
}

func TestDoNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	_, err := NewHTTPRequester().Do(context.Background(), &provider.Request{
		Method: http.MethodPost,
		URL:    server.URL,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestDoContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPRequester().Do(ctx, &provider.Request{
		Method: http.MethodGet,
		URL:    server.URL,
	})
	assert.Error(t, err)
}

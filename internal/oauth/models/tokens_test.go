package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSetFromMapDefaults(t *testing.T) {
	ts := TokenSetFromMap(map[string]any{"access_token": "at"})

	assert.Equal(t, "at", ts.AccessToken)
	assert.Equal(t, "Bearer", ts.TokenType, "token_type defaults to Bearer")
	assert.Nil(t, ts.ExpiresIn)
	assert.False(t, ts.IssuedAt.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), ts.IssuedAt, time.Minute)
}

func TestTokenSetFromMapNumericForms(t *testing.T) {
	for name, value := range map[string]any{
		"float64":     float64(3600),
		"int":         int(3600),
		"int64":       int64(3600),
		"json.Number": json.Number("3600"),
	} {
		ts := TokenSetFromMap(map[string]any{"access_token": "at", "expires_in": value})
		require.NotNil(t, ts.ExpiresIn, name)
		assert.Equal(t, int64(3600), *ts.ExpiresIn, name)
	}
}

func TestExpiresAtAndIsExpired(t *testing.T) {
	ts := TokenSetFromMap(map[string]any{"access_token": "at", "expires_in": float64(3600)})

	exp, ok := ts.ExpiresAt()
	require.True(t, ok)
	assert.WithinDuration(t, ts.IssuedAt.Add(time.Hour), exp, time.Second)
	assert.False(t, ts.IsExpired())

	ts.IssuedAt = time.Now().UTC().Add(-2 * time.Hour)
	assert.True(t, ts.IsExpired())
}

func TestTokensWithoutExpiryNeverExpire(t *testing.T) {
	ts := TokenSetFromMap(map[string]any{"access_token": "at"})
	ts.IssuedAt = time.Now().UTC().Add(-24 * 365 * time.Hour)

	_, ok := ts.ExpiresAt()
	assert.False(t, ok)
	assert.False(t, ts.IsExpired())
}

func TestScopesSplitsOnWhitespace(t *testing.T) {
	ts := &TokenSet{Scope: "openid  email profile"}
	assert.Equal(t, []string{"openid", "email", "profile"}, ts.Scopes())

	assert.Empty(t, (&TokenSet{}).Scopes())
}

func TestJSONRoundTripPreservesCoreFields(t *testing.T) {
	original := TokenSetFromMap(map[string]any{
		"access_token":  "at",
		"token_type":    "Bearer",
		"expires_in":    float64(3600),
		"refresh_token": "rt",
		"scope":         "openid email",
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var reloaded TokenSet
	require.NoError(t, json.Unmarshal(data, &reloaded))

	assert.Equal(t, original.AccessToken, reloaded.AccessToken)
	assert.Equal(t, original.TokenType, reloaded.TokenType)
	assert.Equal(t, original.RefreshToken, reloaded.RefreshToken)
	assert.Equal(t, original.Scope, reloaded.Scope)
	require.NotNil(t, reloaded.ExpiresIn)
	assert.Equal(t, int64(3600), *reloaded.ExpiresIn)
}

func TestMapRendersExpiresAtISO8601(t *testing.T) {
	ts := TokenSetFromMap(map[string]any{"access_token": "at", "expires_in": float64(60)})

	m := ts.Map()
	expiresAt, ok := m["expires_at"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, expiresAt)
	assert.NoError(t, err)
}

func TestOAuth2TokenBridge(t *testing.T) {
	ts := TokenSetFromMap(map[string]any{
		"access_token":  "at",
		"refresh_token": "rt",
		"expires_in":    float64(3600),
	})

	tok := ts.OAuth2Token()
	assert.Equal(t, "at", tok.AccessToken)
	assert.Equal(t, "rt", tok.RefreshToken)
	assert.True(t, tok.Valid())
}

func TestUserInfoNormalization(t *testing.T) {
	info := UserInfoFromMap(map[string]any{
		"sub":            "u-1",
		"email":          "alice@example.com",
		"email_verified": true,
		"name":           "Alice",
	})

	want := &UserInfo{
		ID:    "u-1",
		Email: "alice@example.com",
		Name:  "Alice",
	}
	verified := true
	want.VerifiedEmail = &verified
	want.Raw = info.Raw

	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("user info mismatch (-want +got):\n%s", diff)
	}
}

func TestUserInfoIDPrecedenceAndNumericIDs(t *testing.T) {
	info := UserInfoFromMap(map[string]any{"id": "from-id", "sub": "from-sub"})
	assert.Equal(t, "from-id", info.ID)

	info = UserInfoFromMap(map[string]any{"id": float64(42)})
	assert.Equal(t, "42", info.ID)
}

func TestUserInfoVerifiedEmailSpellings(t *testing.T) {
	info := UserInfoFromMap(map[string]any{"verified_email": false})
	require.NotNil(t, info.VerifiedEmail)
	assert.False(t, *info.VerifiedEmail)

	info = UserInfoFromMap(map[string]any{})
	assert.Nil(t, info.VerifiedEmail)
}

// Package models holds the value types shared by every OAuth provider:
// the issued token set and the normalized user identity record.
package models

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// TokenSet represents one issued set of OAuth 2.0 tokens.
//
// It is immutable after construction; a refresh produces a replacement
// TokenSet rather than mutating the old one. Raw retains the provider's
// original payload so callers can reach fields this model does not know
// about.
type TokenSet struct {
	AccessToken  string
	TokenType    string
	ExpiresIn    *int64
	RefreshToken string
	Scope        string
	IDToken      string
	IssuedAt     time.Time
	Raw          map[string]any
}

// TokenSetFromMap builds a TokenSet from a provider token response.
// IssuedAt is stamped locally at construction time, never taken from the
// provider payload.
func TokenSetFromMap(raw map[string]any) *TokenSet {
	ts := &TokenSet{
		AccessToken:  stringField(raw, "access_token"),
		TokenType:    stringField(raw, "token_type"),
		RefreshToken: stringField(raw, "refresh_token"),
		Scope:        stringField(raw, "scope"),
		IDToken:      stringField(raw, "id_token"),
		IssuedAt:     time.Now().UTC(),
		Raw:          raw,
	}
	if ts.TokenType == "" {
		ts.TokenType = "Bearer"
	}
	if v, ok := intField(raw, "expires_in"); ok {
		ts.ExpiresIn = &v
	}
	return ts
}

// ExpiresAt reports when the access token expires. The second return is
// false when the provider sent no expires_in, in which case the token has
// no known expiry.
func (t *TokenSet) ExpiresAt() (time.Time, bool) {
	if t.ExpiresIn == nil {
		return time.Time{}, false
	}
	return t.IssuedAt.Add(time.Duration(*t.ExpiresIn) * time.Second), true
}

// IsExpired reports whether wall-clock time has passed ExpiresAt. Tokens
// without expiry information never auto-expire.
func (t *TokenSet) IsExpired() bool {
	exp, ok := t.ExpiresAt()
	if !ok {
		return false
	}
	return !time.Now().UTC().Before(exp)
}

// Scopes splits the scope string on whitespace. Empty when no scope was
// granted.
func (t *TokenSet) Scopes() []string {
	return strings.Fields(t.Scope)
}

// Map renders the persisted representation of the token set. This is the
// layout written by the file token store: one flat JSON object with
// expires_at as ISO-8601.
func (t *TokenSet) Map() map[string]any {
	m := map[string]any{
		"access_token":  t.AccessToken,
		"token_type":    t.TokenType,
		"expires_in":    nil,
		"refresh_token": nullableString(t.RefreshToken),
		"scope":         nullableString(t.Scope),
		"id_token":      nullableString(t.IDToken),
		"expires_at":    nil,
	}
	if t.ExpiresIn != nil {
		m["expires_in"] = *t.ExpiresIn
	}
	if exp, ok := t.ExpiresAt(); ok {
		m["expires_at"] = exp.Format(time.RFC3339)
	}
	return m
}

// MarshalJSON serializes the persisted layout.
func (t *TokenSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Map())
}

// UnmarshalJSON rebuilds a TokenSet from the persisted layout. Issuance
// time restarts at load time; expiry is recomputed from expires_in.
func (t *TokenSet) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = *TokenSetFromMap(raw)
	return nil
}

// OAuth2Token bridges to the golang.org/x/oauth2 token type for callers
// that hand tokens to x/oauth2-based HTTP clients.
func (t *TokenSet) OAuth2Token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
	}
	if exp, ok := t.ExpiresAt(); ok {
		tok.Expiry = exp
	}
	return tok
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) (int64, bool) {
	switch v := m[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

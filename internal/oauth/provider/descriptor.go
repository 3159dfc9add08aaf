// Package provider defines the static descriptor for each supported OAuth
// provider: its endpoints, default scopes and the request-shaping rules for
// code exchange, refresh, revocation and identity retrieval.
//
// A provider is data plus functions, not a type hierarchy. Each descriptor
// is an immutable value that is safe to share across concurrently executing
// flows; adding a ninth provider means adding one descriptor constructor
// and a registry entry.
package provider

import (
	"net/http"
	"net/url"
)

// Credentials are the caller-supplied client credentials a descriptor
// shapes into requests. ClientSecret may be empty when the flow uses PKCE.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Descriptor is the per-provider static configuration. A zero endpoint
// string means the provider does not support that operation in this model;
// the flow engine turns absence into a declared unsupported-operation
// failure rather than a silent no-op.
type Descriptor struct {
	Name                  string
	DisplayName           string
	AuthorizationEndpoint string
	TokenEndpoint         string
	RevocationEndpoint    string
	UserInfoEndpoint      string
	DefaultScopes         []string

	// Optional request-shaping overrides. When nil, the standard OAuth 2.0
	// form-POST shapes below apply.
	exchange     func(c Credentials, code string) *Request
	exchangePKCE func(c Credentials, code, verifier string) *Request
	refresh      func(c Credentials, refreshToken string) *Request
	revoke       func(c Credentials, token string) *Request
	userInfo     func(accessToken string) *Request
}

// SupportsRevocation reports whether the provider has a revocation
// endpoint in this model.
func (d Descriptor) SupportsRevocation() bool { return d.RevocationEndpoint != "" }

// SupportsUserInfo reports whether the provider has an identity endpoint
// in this model.
func (d Descriptor) SupportsUserInfo() bool { return d.UserInfoEndpoint != "" }

// ExchangeRequest shapes the standard authorization_code grant.
func (d Descriptor) ExchangeRequest(c Credentials, code string) *Request {
	if d.exchange != nil {
		return d.exchange(c, code)
	}
	return d.formPost(d.TokenEndpoint, url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"code":          {code},
		"redirect_uri":  {c.RedirectURI},
		"grant_type":    {"authorization_code"},
	})
}

// ExchangePKCERequest shapes the PKCE variant of the authorization_code
// grant. The client secret is still sent when the caller has one;
// public clients leave it empty.
func (d Descriptor) ExchangePKCERequest(c Credentials, code, verifier string) *Request {
	if d.exchangePKCE != nil {
		return d.exchangePKCE(c, code, verifier)
	}
	form := url.Values{
		"client_id":     {c.ClientID},
		"code":          {code},
		"redirect_uri":  {c.RedirectURI},
		"grant_type":    {"authorization_code"},
		"code_verifier": {verifier},
	}
	if c.ClientSecret != "" {
		form.Set("client_secret", c.ClientSecret)
	}
	return d.formPost(d.TokenEndpoint, form)
}

// RefreshRequest shapes the refresh_token grant.
func (d Descriptor) RefreshRequest(c Credentials, refreshToken string) *Request {
	if d.refresh != nil {
		return d.refresh(c, refreshToken)
	}
	return d.formPost(d.TokenEndpoint, url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	})
}

// RevokeRequest shapes the token revocation call. Callers must check
// SupportsRevocation first; the returned request is nil otherwise.
func (d Descriptor) RevokeRequest(c Credentials, token string) *Request {
	if !d.SupportsRevocation() {
		return nil
	}
	if d.revoke != nil {
		return d.revoke(c, token)
	}
	return d.formPost(d.RevocationEndpoint, url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"token":         {token},
	})
}

// UserInfoRequest shapes the authenticated identity fetch. Callers must
// check SupportsUserInfo first; the returned request is nil otherwise.
func (d Descriptor) UserInfoRequest(accessToken string) *Request {
	if !d.SupportsUserInfo() {
		return nil
	}
	if d.userInfo != nil {
		return d.userInfo(accessToken)
	}
	return bearerGet(d.UserInfoEndpoint, accessToken)
}

func (d Descriptor) formPost(endpoint string, form url.Values) *Request {
	return &Request{
		Method: http.MethodPost,
		URL:    endpoint,
		Header: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		Form:   form,
	}
}

func bearerGet(endpoint, accessToken string) *Request {
	return &Request{
		Method: http.MethodGet,
		URL:    endpoint,
		Header: map[string]string{"Authorization": "Bearer " + accessToken},
	}
}

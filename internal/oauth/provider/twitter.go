package provider

import "net/url"

// Twitter returns the descriptor for Twitter/X API v2 OAuth 2.0 endpoints.
// The token, refresh and revocation calls authenticate the client with
// HTTP Basic credentials instead of form parameters.
func Twitter() Descriptor {
	d := Descriptor{
		Name:                  NameTwitter,
		DisplayName:           "Twitter (X)",
		AuthorizationEndpoint: "https://twitter.com/i/oauth2/authorize",
		TokenEndpoint:         "https://api.twitter.com/2/oauth2/token",
		RevocationEndpoint:    "https://api.twitter.com/2/oauth2/revoke",
		UserInfoEndpoint:      "https://api.twitter.com/2/users/me",
		DefaultScopes:         []string{"tweet.read", "users.read", "offline.access"},
	}
	basic := func(c Credentials, req *Request) *Request {
		req.BasicAuth = &BasicAuth{Username: c.ClientID, Password: c.ClientSecret}
		req.Form.Del("client_secret")
		return req
	}
	d.exchange = func(c Credentials, code string) *Request {
		return basic(c, d.formPost(d.TokenEndpoint, url.Values{
			"client_id":    {c.ClientID},
			"code":         {code},
			"redirect_uri": {c.RedirectURI},
			"grant_type":   {"authorization_code"},
		}))
	}
	d.exchangePKCE = func(c Credentials, code, verifier string) *Request {
		return basic(c, d.formPost(d.TokenEndpoint, url.Values{
			"client_id":     {c.ClientID},
			"code":          {code},
			"redirect_uri":  {c.RedirectURI},
			"grant_type":    {"authorization_code"},
			"code_verifier": {verifier},
		}))
	}
	d.refresh = func(c Credentials, refreshToken string) *Request {
		return basic(c, d.formPost(d.TokenEndpoint, url.Values{
			"client_id":     {c.ClientID},
			"refresh_token": {refreshToken},
			"grant_type":    {"refresh_token"},
		}))
	}
	d.revoke = func(c Credentials, token string) *Request {
		return basic(c, d.formPost(d.RevocationEndpoint, url.Values{
			"client_id": {c.ClientID},
			"token":     {token},
		}))
	}
	return d
}

package provider

import (
	"net/http"
	"net/url"
)

// GitHub returns the descriptor for GitHub's OAuth endpoints. GitHub
// answers the token endpoint with a form-encoded body unless the request
// asks for JSON, so every token-endpoint shape carries an Accept header.
// Revocation goes through the applications API with Basic client
// authentication and a JSON body.
func GitHub() Descriptor {
	d := Descriptor{
		Name:                  NameGitHub,
		DisplayName:           "GitHub",
		AuthorizationEndpoint: "https://github.com/login/oauth/authorize",
		TokenEndpoint:         "https://github.com/login/oauth/access_token",
		RevocationEndpoint:    "https://api.github.com/applications/{client_id}/token",
		UserInfoEndpoint:      "https://api.github.com/user",
		DefaultScopes:         []string{"read:user", "user:email"},
	}
	d.exchange = func(c Credentials, code string) *Request {
		req := d.formPost(d.TokenEndpoint, url.Values{
			"client_id":     {c.ClientID},
			"client_secret": {c.ClientSecret},
			"code":          {code},
			"redirect_uri":  {c.RedirectURI},
			"grant_type":    {"authorization_code"},
		})
		req.setHeader("Accept", "application/json")
		return req
	}
	d.refresh = func(c Credentials, refreshToken string) *Request {
		req := d.formPost(d.TokenEndpoint, url.Values{
			"client_id":     {c.ClientID},
			"client_secret": {c.ClientSecret},
			"refresh_token": {refreshToken},
			"grant_type":    {"refresh_token"},
		})
		req.setHeader("Accept", "application/json")
		return req
	}
	d.revoke = func(c Credentials, token string) *Request {
		return &Request{
			Method: http.MethodDelete,
			URL:    "https://api.github.com/applications/" + url.PathEscape(c.ClientID) + "/token",
			Header: map[string]string{"Accept": "application/vnd.github+json"},
			JSON:   map[string]any{"access_token": token},
			BasicAuth: &BasicAuth{
				Username: c.ClientID,
				Password: c.ClientSecret,
			},
		}
	}
	d.userInfo = func(accessToken string) *Request {
		req := bearerGet(d.UserInfoEndpoint, accessToken)
		req.setHeader("Accept", "application/vnd.github+json")
		return req
	}
	return d
}

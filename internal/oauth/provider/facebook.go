package provider

import (
	"net/http"
	"net/url"
)

// Facebook returns the descriptor for Facebook's Graph API OAuth
// endpoints. The token endpoint is read with GET and query parameters
// rather than a form POST, and revocation deletes the app's permissions
// for the token's user.
func Facebook() Descriptor {
	d := Descriptor{
		Name:                  NameFacebook,
		DisplayName:           "Facebook",
		AuthorizationEndpoint: "https://www.facebook.com/v18.0/dialog/oauth",
		TokenEndpoint:         "https://graph.facebook.com/v18.0/oauth/access_token",
		RevocationEndpoint:    "https://graph.facebook.com/v18.0/me/permissions",
		UserInfoEndpoint:      "https://graph.facebook.com/v18.0/me",
		DefaultScopes:         []string{"email", "public_profile"},
	}
	d.exchange = func(c Credentials, code string) *Request {
		return &Request{
			Method: http.MethodGet,
			URL:    d.TokenEndpoint,
			Query: url.Values{
				"client_id":     {c.ClientID},
				"client_secret": {c.ClientSecret},
				"code":          {code},
				"redirect_uri":  {c.RedirectURI},
			},
		}
	}
	d.refresh = func(c Credentials, refreshToken string) *Request {
		return &Request{
			Method: http.MethodGet,
			URL:    d.TokenEndpoint,
			Query: url.Values{
				"client_id":     {c.ClientID},
				"client_secret": {c.ClientSecret},
				"refresh_token": {refreshToken},
				"grant_type":    {"refresh_token"},
			},
		}
	}
	d.revoke = func(c Credentials, token string) *Request {
		return &Request{
			Method: http.MethodDelete,
			URL:    d.RevocationEndpoint,
			Query:  url.Values{"access_token": {token}},
		}
	}
	d.userInfo = func(accessToken string) *Request {
		req := bearerGet(d.UserInfoEndpoint, accessToken)
		req.Query = url.Values{
			"fields": {"id,name,email,first_name,last_name,picture,locale"},
		}
		return req
	}
	return d
}

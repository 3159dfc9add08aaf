package provider

import "net/url"

// Apple returns the descriptor for Sign in with Apple. Apple exposes no
// identity endpoint; user claims travel only inside the id_token, which
// this model treats as opaque. The client secret must be a pre-generated
// JWT signed with the caller's Apple private key; generating it is the
// caller's responsibility.
func Apple() Descriptor {
	d := Descriptor{
		Name:                  NameApple,
		DisplayName:           "Apple",
		AuthorizationEndpoint: "https://appleid.apple.com/auth/authorize",
		TokenEndpoint:         "https://appleid.apple.com/auth/token",
		RevocationEndpoint:    "https://appleid.apple.com/auth/revoke",
		DefaultScopes:         []string{"name", "email"},
	}
	d.revoke = func(c Credentials, token string) *Request {
		return d.formPost(d.RevocationEndpoint, url.Values{
			"client_id":       {c.ClientID},
			"client_secret":   {c.ClientSecret},
			"token":           {token},
			"token_type_hint": {"access_token"},
		})
	}
	return d
}

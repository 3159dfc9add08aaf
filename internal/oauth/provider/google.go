package provider

// Google returns the descriptor for Google's OAuth 2.0 / OIDC endpoints.
// Google follows the standard form-POST token shapes, so no overrides are
// needed.
func Google() Descriptor {
	return Descriptor{
		Name:                  NameGoogle,
		DisplayName:           "Google",
		AuthorizationEndpoint: "https://accounts.google.com/o/oauth2/v2/auth",
		TokenEndpoint:         "https://oauth2.googleapis.com/token",
		RevocationEndpoint:    "https://oauth2.googleapis.com/revoke",
		UserInfoEndpoint:      "https://www.googleapis.com/oauth2/v2/userinfo",
		DefaultScopes:         []string{"openid", "email", "profile"},
	}
}

package provider

// LinkedIn returns the descriptor for LinkedIn's OAuth 2.0 endpoints.
// LinkedIn has no revocation endpoint in this model; attempting to revoke
// fails as an unsupported operation.
func LinkedIn() Descriptor {
	return Descriptor{
		Name:                  NameLinkedIn,
		DisplayName:           "LinkedIn",
		AuthorizationEndpoint: "https://www.linkedin.com/oauth/v2/authorization",
		TokenEndpoint:         "https://www.linkedin.com/oauth/v2/accessToken",
		UserInfoEndpoint:      "https://api.linkedin.com/v2/me",
		DefaultScopes:         []string{"r_liteprofile", "r_emailaddress"},
	}
}

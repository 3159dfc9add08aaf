package provider

// Discord returns the descriptor for Discord's OAuth 2.0 endpoints.
// Discord follows the standard form-POST shapes throughout.
func Discord() Descriptor {
	return Descriptor{
		Name:                  NameDiscord,
		DisplayName:           "Discord",
		AuthorizationEndpoint: "https://discord.com/api/oauth2/authorize",
		TokenEndpoint:         "https://discord.com/api/oauth2/token",
		RevocationEndpoint:    "https://discord.com/api/oauth2/token/revoke",
		UserInfoEndpoint:      "https://discord.com/api/users/@me",
		DefaultScopes:         []string{"identify", "email"},
	}
}

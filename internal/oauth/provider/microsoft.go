package provider

// DefaultTenant is the multi-tenant Azure AD tenant used when the caller
// does not specify one.
const DefaultTenant = "common"

// Microsoft returns the descriptor for the Microsoft identity platform
// (Azure AD v2.0), parameterized by tenant. Session teardown goes through
// the tenant logout endpoint, which stands in for token revocation in
// this model.
func Microsoft(tenant string) Descriptor {
	if tenant == "" {
		tenant = DefaultTenant
	}
	base := "https://login.microsoftonline.com/" + tenant + "/oauth2/v2.0"
	return Descriptor{
		Name:                  NameMicrosoft,
		DisplayName:           "Microsoft",
		AuthorizationEndpoint: base + "/authorize",
		TokenEndpoint:         base + "/token",
		RevocationEndpoint:    base + "/logout",
		UserInfoEndpoint:      "https://graph.microsoft.com/v1.0/me",
		DefaultScopes:         []string{"openid", "email", "profile"},
	}
}

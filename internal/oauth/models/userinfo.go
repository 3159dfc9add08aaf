package models

import "strconv"

// UserInfo represents normalized user identity information from any
// provider. Raw retains the full provider payload.
type UserInfo struct {
	ID            string
	Email         string
	Name          string
	GivenName     string
	FamilyName    string
	Picture       string
	Locale        string
	VerifiedEmail *bool
	Raw           map[string]any
}

// UserInfoFromMap normalizes a provider identity payload. The identifier
// comes from "id" when present, falling back to the OIDC "sub" claim.
// Email verification accepts both the "verified_email" and
// "email_verified" spellings providers use.
func UserInfoFromMap(raw map[string]any) *UserInfo {
	u := &UserInfo{
		ID:         idField(raw, "id"),
		Email:      stringField(raw, "email"),
		Name:       stringField(raw, "name"),
		GivenName:  stringField(raw, "given_name"),
		FamilyName: stringField(raw, "family_name"),
		Picture:    stringField(raw, "picture"),
		Locale:     stringField(raw, "locale"),
		Raw:        raw,
	}
	if u.ID == "" {
		u.ID = idField(raw, "sub")
	}
	if v, ok := boolField(raw, "verified_email"); ok {
		u.VerifiedEmail = &v
	} else if v, ok := boolField(raw, "email_verified"); ok {
		u.VerifiedEmail = &v
	}
	return u
}

// idField tolerates the numeric identifiers GitHub and Facebook return.
func idField(m map[string]any, key string) string {
	if s := stringField(m, key); s != "" {
		return s
	}
	if n, ok := intField(m, key); ok {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

func boolField(m map[string]any, key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}

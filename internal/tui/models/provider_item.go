package models

import (
	"strings"

	"github.com/oauthkit/oauthkit/internal/oauth/provider"
)

// ProviderItem wraps a provider descriptor for the playground list.
type ProviderItem struct {
	Descriptor provider.Descriptor
	UsePKCE    bool
}

// Title implements list.Item
func (p ProviderItem) Title() string { return p.Descriptor.DisplayName }

// Description implements list.Item
func (p ProviderItem) Description() string {
	ops := []string{"authorize", "exchange", "refresh"}
	if p.Descriptor.SupportsRevocation() {
		ops = append(ops, "revoke")
	}
	if p.Descriptor.SupportsUserInfo() {
		ops = append(ops, "userinfo")
	}
	return strings.Join(ops, " · ")
}

// FilterValue implements list.Item
func (p ProviderItem) FilterValue() string {
	return p.Descriptor.Name + " " + p.Descriptor.DisplayName
}

// TogglePKCE flips whether the sample flow uses PKCE.
func (p ProviderItem) TogglePKCE() ProviderItem {
	p.UsePKCE = !p.UsePKCE
	return p
}

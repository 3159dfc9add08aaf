package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProvider indicates a provider identifier outside the closed
// set of supported providers.
var ErrUnknownProvider = errors.New("unknown provider")

// Canonical provider names, in registration order.
const (
	NameGoogle    = "google"
	NameGitHub    = "github"
	NameFacebook  = "facebook"
	NameTwitter   = "twitter"
	NameMicrosoft = "microsoft"
	NameLinkedIn  = "linkedin"
	NameDiscord   = "discord"
	NameApple     = "apple"
)

// Names lists the valid provider identifiers.
func Names() []string {
	return []string{
		NameGoogle, NameGitHub, NameFacebook, NameTwitter,
		NameMicrosoft, NameLinkedIn, NameDiscord, NameApple,
	}
}

// All returns every registered descriptor, in registration order.
// Microsoft uses the default "common" tenant.
func All() []Descriptor {
	ds := make([]Descriptor, 0, len(Names()))
	for _, name := range Names() {
		d, _ := Resolve(name)
		ds = append(ds, d)
	}
	return ds
}

// Resolve maps a provider identifier to its descriptor. Matching is
// case-insensitive. Unknown identifiers fail with ErrUnknownProvider;
// the message enumerates the valid names.
func Resolve(name string) (Descriptor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameGoogle:
		return Google(), nil
	case NameGitHub:
		return GitHub(), nil
	case NameFacebook:
		return Facebook(), nil
	case NameTwitter:
		return Twitter(), nil
	case NameMicrosoft:
		return Microsoft(DefaultTenant), nil
	case NameLinkedIn:
		return LinkedIn(), nil
	case NameDiscord:
		return Discord(), nil
	case NameApple:
		return Apple(), nil
	default:
		return Descriptor{}, fmt.Errorf("%w: %q (valid providers: %s)",
			ErrUnknownProvider, name, strings.Join(Names(), ", "))
	}
}

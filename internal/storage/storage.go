// Package storage persists issued token sets keyed by an application
// defined user identifier. The identifier carries no linkage to any
// provider identity; it is entirely the caller's namespace.
package storage

import (
	"errors"
	"strings"

	"github.com/oauthkit/oauthkit/internal/oauth/models"
)

// ErrStorage indicates a persistence read, write or corruption failure.
var ErrStorage = errors.New("token storage failure")

// TokenStore is the pluggable persistence contract. Save and Update are
// equivalent: both replace whatever the key held. Get returns (nil, nil)
// when no record exists; corruption is an error, never "absent".
type TokenStore interface {
	Save(userID string, tokens *models.TokenSet) error
	Get(userID string) (*models.TokenSet, error)
	Update(userID string, tokens *models.TokenSet) error
	Delete(userID string) (bool, error)
	ClearAll() error
}

// SanitizeUserID reduces a user identifier to the alphanumeric/_/- subset
// safe to use as a storage key or filename. Everything else is dropped,
// which forecloses path traversal through crafted identifiers.
func SanitizeUserID(userID string) string {
	var b strings.Builder
	for _, r := range userID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

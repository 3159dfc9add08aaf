package storage

import (
	"fmt"

	"github.com/oauthkit/oauthkit/internal/config"
	"go.uber.org/fx"
)

// NewTokenStore builds the token store selected by the configuration.
func NewTokenStore(cfg *config.Config) (TokenStore, error) {
	switch cfg.Storage.Type {
	case config.StorageFile:
		return NewFileStore(cfg.Storage.Dir)
	case config.StorageMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage type %q", ErrStorage, cfg.Storage.Type)
	}
}

var Module = fx.Module("storage",
	fx.Provide(NewTokenStore),
)

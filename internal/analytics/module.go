package analytics

import (
	"github.com/oauthkit/oauthkit/internal/config"
	"go.uber.org/fx"
)

// NewTrackerFromConfig builds the tracker at the configured path.
func NewTrackerFromConfig(cfg *config.Config) (*Tracker, error) {
	return NewTracker(cfg.Analytics.Path)
}

var Module = fx.Module("analytics",
	fx.Provide(NewTrackerFromConfig),
)

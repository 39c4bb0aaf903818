// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/openmotics/gwci/internal/domain/entities"
)

// ConfigRepository defines the interface for loading the CI workspace
// configuration.
type ConfigRepository interface {
	// Load reads and validates the workspace configuration
	Load(ctx context.Context) (*entities.WorkspaceConfig, error)
}

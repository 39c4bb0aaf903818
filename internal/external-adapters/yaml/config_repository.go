package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/openmotics/gwci/internal/domain/entities"
)

// ConfigRepository implements repositories.ConfigRepository using a YAML file
type ConfigRepository struct {
	path   string
	parser *ConfigParser
}

// NewConfigRepository creates a new YAML-based configuration repository
func NewConfigRepository(path string) *ConfigRepository {
	return &ConfigRepository{
		path:   path,
		parser: NewConfigParser(),
	}
}

// Load reads and validates the workspace configuration
func (r *ConfigRepository) Load(_ context.Context) (*entities.WorkspaceConfig, error) {
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("workspace configuration not found: %s", r.path)
	}

	return r.parser.ParseFile(r.path)
}

package gasdk

import (
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/asset"
)

type ServiceOption func(*GenericAsset)

func WithVerbose() ServiceOption {
	return func(c *GenericAsset) {
		c.verbose = true
	}
}

// WithRegistry sets the registry used to resolve asset symbols.
func WithRegistry(registry *asset.Registry) ServiceOption {
	return func(c *GenericAsset) {
		if registry != nil {
			c.registry = registry
		}
	}
}

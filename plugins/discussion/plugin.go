// Package discussion adds a comment thread reachable by direct route
// only; it contributes no tab.
package discussion

import (
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// Register attaches the discussion thread to the given entity types.
func Register(reg *plugin.Registry, types ...*entity.Type) error {
	d := &plugin.Descriptor{
		Name:    "Discussion",
		Handler: &ThreadHandler{},
	}
	return reg.Register(types, d)
}

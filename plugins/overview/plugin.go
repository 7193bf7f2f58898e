// Package overview contributes the landing tab of every entity detail
// page.
package overview

import (
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// Register attaches the overview view to the given entity types.
func Register(reg *plugin.Registry, types ...*entity.Type) error {
	d := &plugin.Descriptor{
		Name:    "Overview",
		Menu:    &plugin.Menu{Label: "Overview", Icon: "home", Order: 0},
		Handler: &Handler{},
	}
	return reg.Register(types, d)
}

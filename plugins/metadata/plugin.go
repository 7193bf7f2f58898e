// Package metadata bundles the metadata view and editor into a single
// detail-page tab.
package metadata

import (
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// EditPermission gates the editor member. The group tab itself is open:
// anyone who can see the instance can read its metadata.
const EditPermission = "metadata.edit"

// Register attaches the metadata group to the given entity types. The
// view member is the landing route the collapsed tab links to.
func Register(reg *plugin.Registry, types ...*entity.Type) error {
	g := &plugin.Group{
		Name:        "Metadata",
		RoutePrefix: "metadata",
		Menu:        &plugin.Menu{Label: "Metadata", Icon: "tags", Order: 10},
		Members: []*plugin.Descriptor{
			{Name: "View", Handler: &ViewHandler{}},
			{Name: "Edit", Permission: EditPermission, Handler: &EditHandler{}},
		},
	}
	return reg.Register(types, g)
}

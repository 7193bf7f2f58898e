// Package export adds a dataset export view with a download sub-route.
package export

import (
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// Permission gates both the export page and the download action.
const Permission = "dataset.export"

// Register attaches the export view to the given entity types.
func Register(reg *plugin.Registry, types ...*entity.Type) error {
	d := &plugin.Descriptor{
		Name:       "Export",
		Permission: Permission,
		Menu:       &plugin.Menu{Label: "Export", Icon: "download", Order: 90},
		Handler:    &PageHandler{},
		Assets: plugin.Assets{
			Scripts: []string{"plugins/export/export.js"},
		},
		SubRoutes: []plugin.SubRoute{
			{Path: "download", Name: "download", Handler: &DownloadHandler{}},
		},
	}
	return reg.Register(types, d)
}

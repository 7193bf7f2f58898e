// Package activity contributes a measurement-activity timeline to sample
// detail pages. It registers on the sample supertype but only shows for
// the subtypes that track activity.
package activity

import (
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// Register attaches the timeline to base, scoped to the given concrete
// subtypes.
func Register(reg *plugin.Registry, base *entity.Type, subtypes ...*entity.Type) error {
	d := &plugin.Descriptor{
		Name:    "Activity",
		Menu:    &plugin.Menu{Label: "Activity", Icon: "pulse", Order: 30},
		Visible: plugin.VisibleForTypes(subtypes...),
		Handler: &TimelineHandler{},
	}
	return reg.Register([]*entity.Type{base}, d)
}

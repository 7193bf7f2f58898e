package plugin

import (
	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
)

// Crumb is one entry in the breadcrumb chain of a detail page.
type Crumb struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// Tab is a derived navigation entry. Built fresh per request, never
// stored.
type Tab struct {
	Label   string `json:"label"`
	Icon    string `json:"icon,omitempty"`
	URL     string `json:"url"`
	Order   int    `json:"order"`
	Current bool   `json:"current"`
}

// ViewContext carries everything a plugin view needs: the resolved
// instance, the viewer, the breadcrumb chain, the tab list for the
// current page, template candidates and static assets.
type ViewContext struct {
	Entity      *entity.Type
	Instance    entity.Instance
	Principal   auth.Principal
	Breadcrumbs []Crumb
	Tabs        []Tab
	Templates   []string
	Assets      Assets
}

package plugin

import "strings"

// Group bundles ordered descriptors under one URL prefix and a single
// tab. The group-level permission and visibility gate the tab and every
// member route; each member's own permission additionally gates direct
// access to that member's route. Members[0] is the landing view the
// collapsed tab links to.
type Group struct {
	// Name identifies the group within one entity type. Required.
	Name string

	// RoutePrefix is the shared URL namespace. Defaults to the slugified
	// name.
	RoutePrefix string

	// Members is the ordered, non-empty list of bundled descriptors.
	// Members normally carry no Menu of their own; the group supplies
	// the single tab.
	Members []*Descriptor

	// Permission is the group-level gate. Tab visibility uses only this;
	// member permissions are not re-checked when deciding whether to
	// show the tab.
	Permission string

	Visible VisibilityFunc

	Menu *Menu
}

func (g *Group) sealedUnit() {}

// UnitName implements Unit.
func (g *Group) UnitName() string { return Slugify(g.Name) }

// UnitMenu implements Unit.
func (g *Group) UnitMenu() *Menu { return g.Menu }

// ResolvedRoutePrefix returns the explicit prefix or the slugified name.
func (g *Group) ResolvedRoutePrefix() string {
	if g.RoutePrefix != "" {
		return g.RoutePrefix
	}
	return Slugify(g.Name)
}

// Routes implements Unit: every member route prefixed with the group's
// route prefix, member-assigned route names preserved. The group gate is
// layered ahead of each member's own gate.
func (g *Group) Routes() []Route {
	prefix := g.ResolvedRoutePrefix()
	var routes []Route
	for _, m := range g.Members {
		if m == nil {
			continue
		}
		for _, r := range m.Routes() {
			r.Path = prefix + "/" + strings.TrimPrefix(r.Path, "/")
			r.permissions = append(gate(g.Permission), r.permissions...)
			r.visibility = append([]VisibilityFunc{g.Visible}, r.visibility...)
			routes = append(routes, r)
		}
	}
	return routes
}

// DefaultRoute returns the primary route of Members[0], prefixed — the
// URL the group's collapsed tab links to. The registry rejects empty
// groups at registration time, so callers may assume it exists; a zero
// Route is returned for a malformed group anyway.
func (g *Group) DefaultRoute() Route {
	for _, m := range g.Members {
		if m == nil {
			continue
		}
		r := m.PrimaryRoute()
		r.Path = g.ResolvedRoutePrefix() + "/" + r.Path
		r.permissions = append(gate(g.Permission), r.permissions...)
		r.visibility = append([]VisibilityFunc{g.Visible}, r.visibility...)
		return r
	}
	return Route{}
}

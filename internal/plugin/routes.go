package plugin

import "github.com/FAIR-DM/fairdm-sub001/internal/entity"

// ComposeRoutes flattens the route tuples of every unit applying to t,
// in registration order (supertype registrations first). It is a pure
// function of registry state: the same registry always yields the same
// list, with no dependence on map iteration order.
func ComposeRoutes(r *Registry, t *entity.Type) []Route {
	var out []Route
	for _, u := range r.UnitsFor(t) {
		out = append(out, u.Routes()...)
	}
	return out
}

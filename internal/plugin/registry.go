package plugin

import (
	"fmt"

	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
)

// Registry is the central store mapping entity types to their registered
// units. It is populated during single-threaded startup and read-only
// afterwards, so queries need no locking. Registration performs only
// call-time shape checks; naming, route and membership conflicts are the
// structural validator's job, so registration order cannot affect the
// outcome.
type Registry struct {
	units map[string][]Unit
	types map[string]*entity.Type
	order []*entity.Type
}

func NewRegistry() *Registry {
	return &Registry{
		units: make(map[string][]Unit),
		types: make(map[string]*entity.Type),
	}
}

// Register attaches unit to every given entity type. It rejects nil or
// foreign Unit implementations, handler-less views and groups without
// members; everything else is deferred to Validate.
func (r *Registry) Register(types []*entity.Type, unit Unit) error {
	if len(types) == 0 {
		return fmt.Errorf("plugin: register requires at least one entity type")
	}
	switch u := unit.(type) {
	case *Descriptor:
		if u == nil {
			return fmt.Errorf("plugin: cannot register nil descriptor")
		}
		if u.Handler == nil {
			return fmt.Errorf("plugin: descriptor %q has no handler", u.ResolvedName())
		}
	case *Group:
		if u == nil {
			return fmt.Errorf("plugin: cannot register nil group")
		}
		if len(u.Members) == 0 {
			return fmt.Errorf("plugin: group %q has no members", u.UnitName())
		}
		for _, m := range u.Members {
			if m != nil && m.Handler == nil {
				return fmt.Errorf("plugin: group %q member %q has no handler", u.UnitName(), m.ResolvedName())
			}
		}
	default:
		return fmt.Errorf("plugin: unit must be a *Descriptor or *Group, got %T", unit)
	}

	// Check the whole slice before touching registry state so a failed
	// registration leaves nothing behind.
	for _, t := range types {
		if t == nil {
			return fmt.Errorf("plugin: cannot register %q on nil entity type", unit.UnitName())
		}
	}

	for _, t := range types {
		key := t.Key()
		if _, seen := r.types[key]; !seen {
			r.types[key] = t
			r.order = append(r.order, t)
		}
		r.units[key] = append(r.units[key], unit)
	}
	return nil
}

// UnitsFor returns the units applying to t: those registered on every
// reachable supertype plus those registered on t itself, supertype-first,
// each group in registration order.
func (r *Registry) UnitsFor(t *entity.Type) []Unit {
	var out []Unit
	for _, lt := range t.Lineage() {
		out = append(out, r.units[lt.Key()]...)
	}
	return out
}

// unitsDirect returns only the units registered on t itself.
func (r *Registry) unitsDirect(t *entity.Type) []Unit {
	return r.units[t.Key()]
}

// IsRegistered reports whether unit applies to t, directly or via a
// supertype.
func (r *Registry) IsRegistered(unit Unit, t *entity.Type) bool {
	for _, u := range r.UnitsFor(t) {
		if u == unit {
			return true
		}
	}
	return false
}

// Types returns every entity type with at least one direct registration,
// in first-registration order.
func (r *Registry) Types() []*entity.Type {
	out := make([]*entity.Type, len(r.order))
	copy(out, r.order)
	return out
}

package plugin

import (
	"context"
	"fmt"
	"log"

	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/rbac"
)

// Level classifies a diagnostic. Errors are fatal at startup; warnings
// are logged and do not block serving.
type Level int

const (
	Error Level = iota
	Warning
)

func (l Level) String() string {
	if l == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is one finding of the structural validator.
type Diagnostic struct {
	Level      Level
	Code       string
	Message    string
	EntityType *entity.Type
	Unit       Unit
}

func (d Diagnostic) String() string {
	subject := ""
	if d.EntityType != nil {
		subject = d.EntityType.Key() + ": "
	}
	return fmt.Sprintf("%s [%s] %s%s", d.Level, d.Code, subject, d.Message)
}

// Diagnostic codes emitted by Validate.
const (
	CodeDuplicateName       = "duplicate-name"
	CodeRouteCollision      = "route-collision"
	CodeEmptyGroup          = "empty-group"
	CodeInvalidGroupMember  = "invalid-group-member"
	CodeGroupRouteCollision = "group-route-collision"
	CodeMemberConflict      = "group-member-conflict"
	CodeMemberMenu          = "group-member-menu"
	CodeUnknownPermission   = "unknown-permission"
	CodeSegmentInvalid      = "route-segment-invalid"
	CodeSegmentStyle        = "route-segment-style"
)

// ValidateOption configures Validate.
type ValidateOption func(*validator)

// WithPermissionLister enables the unknown-permission warning against the
// host's permission vocabulary.
func WithPermissionLister(l rbac.PermissionLister) ValidateOption {
	return func(v *validator) { v.lister = l }
}

type validator struct {
	reg    *Registry
	lister rbac.PermissionLister
	known  map[string]bool
	diags  []Diagnostic
}

// Validate inspects the fully-populated registry once, after all
// registrations complete and before the route table is published. The
// outcome is independent of registration order beyond the ordering of
// the diagnostics themselves.
func Validate(ctx context.Context, reg *Registry, opts ...ValidateOption) []Diagnostic {
	v := &validator{reg: reg}
	for _, opt := range opts {
		opt(v)
	}
	if v.lister != nil {
		perms, err := v.lister.KnownPermissions(ctx)
		if err != nil {
			log.Printf("plugin: cannot list known permissions, skipping check: %v", err)
		} else {
			v.known = make(map[string]bool, len(perms))
			for _, p := range perms {
				v.known[p] = true
			}
		}
	}

	for _, t := range reg.Types() {
		v.checkType(t)
	}
	return v.diags
}

// HasErrors reports whether any diagnostic is fatal.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Level == Error {
			return true
		}
	}
	return false
}

func (v *validator) add(level Level, code string, t *entity.Type, u Unit, format string, args ...any) {
	v.diags = append(v.diags, Diagnostic{
		Level:      level,
		Code:       code,
		Message:    fmt.Sprintf(format, args...),
		EntityType: t,
		Unit:       u,
	})
}

// checkType validates the units directly registered on t against each
// other and against everything inherited from supertypes. Conflicts
// between two inherited units are reported on the ancestor they were
// registered on, so each conflict surfaces exactly once.
func (v *validator) checkType(t *entity.Type) {
	inheritedNames := make(map[string]Unit)
	inheritedPaths := make(map[string]Unit)
	for _, anc := range t.Ancestors() {
		for _, u := range v.reg.unitsDirect(anc) {
			inheritedNames[u.UnitName()] = u
			for _, rt := range u.Routes() {
				inheritedPaths[rt.Path] = u
			}
		}
	}

	names := make(map[string]Unit)
	paths := make(map[string]Unit)
	members := make(map[*Descriptor]*Group)
	direct := v.reg.unitsDirect(t)

	for _, u := range direct {
		if g, ok := u.(*Group); ok {
			v.checkGroup(t, g)
			for _, m := range g.Members {
				if m != nil {
					members[m] = g
				}
			}
		}
		v.checkSegments(t, u)
		v.checkPermissions(t, u)

		name := u.UnitName()
		if prev, dup := names[name]; dup {
			v.add(Error, CodeDuplicateName, t, u,
				"unit %q conflicts with another unit of the same name (%T vs %T)", name, u, prev)
		} else if _, dup := inheritedNames[name]; dup {
			v.add(Error, CodeDuplicateName, t, u,
				"unit %q conflicts with a unit of the same name registered on a supertype", name)
		}
		names[name] = u

		for _, rt := range u.Routes() {
			if prev, dup := paths[rt.Path]; dup && prev != u {
				v.add(Error, CodeRouteCollision, t, u,
					"route %q collides with a route of unit %q", rt.Path, prev.UnitName())
			} else if _, dup := inheritedPaths[rt.Path]; dup {
				// Subtype registrations are additive only; shadowing a
				// supertype route is rejected rather than resolved.
				v.add(Error, CodeRouteCollision, t, u,
					"route %q collides with a route inherited from a supertype", rt.Path)
			}
			paths[rt.Path] = u
		}
	}

	for _, u := range direct {
		d, ok := u.(*Descriptor)
		if !ok {
			continue
		}
		if g, conflict := members[d]; conflict {
			v.add(Error, CodeMemberConflict, t, u,
				"descriptor %q is registered standalone and as a member of group %q", d.ResolvedName(), g.UnitName())
		}
	}
}

func (v *validator) checkGroup(t *entity.Type, g *Group) {
	if len(g.Members) == 0 {
		v.add(Error, CodeEmptyGroup, t, g, "group %q has no members", g.UnitName())
		return
	}
	seen := make(map[string]bool)
	for i, m := range g.Members {
		if m == nil {
			v.add(Error, CodeInvalidGroupMember, t, g, "group %q member %d is nil", g.UnitName(), i)
			continue
		}
		if m.Handler == nil {
			v.add(Error, CodeInvalidGroupMember, t, g,
				"group %q member %q has no handler", g.UnitName(), m.ResolvedName())
		}
		if m.Menu != nil {
			v.add(Warning, CodeMemberMenu, t, g,
				"group %q member %q declares a menu; the group supplies the tab", g.UnitName(), m.ResolvedName())
		}
		for _, rt := range m.Routes() {
			path := g.ResolvedRoutePrefix() + "/" + rt.Path
			if seen[path] {
				v.add(Error, CodeGroupRouteCollision, t, g,
					"group %q route %q collides internally", g.UnitName(), path)
			}
			seen[path] = true
		}
	}
}

func (v *validator) checkSegments(t *entity.Type, u Unit) {
	switch unit := u.(type) {
	case *Descriptor:
		v.checkSegment(t, u, unit.ResolvedRouteSegment())
	case *Group:
		v.checkSegment(t, u, unit.ResolvedRoutePrefix())
		for _, m := range unit.Members {
			if m != nil {
				v.checkSegment(t, u, m.ResolvedRouteSegment())
			}
		}
	}
}

// checkSegment enforces the safe segment set [a-z0-9-]. Stylistic
// deviations (uppercase, underscores, dots) still route correctly and
// only warn; anything else would break URL composition and is an error.
func (v *validator) checkSegment(t *entity.Type, u Unit, seg string) {
	if seg == "" {
		v.add(Error, CodeSegmentInvalid, t, u, "unit %q has an empty route segment", u.UnitName())
		return
	}
	styleOnly := true
	clean := true
	for _, r := range seg {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		case r >= 'A' && r <= 'Z', r == '_', r == '.':
			clean = false
		default:
			clean = false
			styleOnly = false
		}
	}
	switch {
	case clean:
	case styleOnly:
		v.add(Warning, CodeSegmentStyle, t, u,
			"route segment %q of unit %q is outside the preferred set [a-z0-9-]", seg, u.UnitName())
	default:
		v.add(Error, CodeSegmentInvalid, t, u,
			"route segment %q of unit %q contains unsafe characters", seg, u.UnitName())
	}
}

func (v *validator) checkPermissions(t *entity.Type, u Unit) {
	if v.known == nil {
		return
	}
	check := func(perm string) {
		if perm != "" && !v.known[perm] {
			v.add(Warning, CodeUnknownPermission, t, u,
				"permission %q of unit %q is not known to the host", perm, u.UnitName())
		}
	}
	switch unit := u.(type) {
	case *Descriptor:
		check(unit.Permission)
	case *Group:
		check(unit.Permission)
		for _, m := range unit.Members {
			if m != nil {
				check(m.Permission)
			}
		}
	}
}

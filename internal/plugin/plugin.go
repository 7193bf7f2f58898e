// Package plugin implements the extension registry that lets
// independently-developed packages attach views to the detail page of any
// registered entity type. Plugins are declared as descriptors (one
// addressable view plus metadata) or groups (an ordered bundle of
// descriptors sharing a URL prefix and collapsing to a single tab),
// registered per entity type during startup, structurally validated once,
// and then served read-only for the life of the process.
package plugin

import (
	"net/http"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
)

// Handler is the view contract plugin authors implement. Dispatch resolves
// the instance and checks permissions before the handler runs, so a
// handler always receives a fully-populated ViewContext.
type Handler interface {
	ServeEntity(w http.ResponseWriter, r *http.Request, vc *ViewContext)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, vc *ViewContext)

func (f HandlerFunc) ServeEntity(w http.ResponseWriter, r *http.Request, vc *ViewContext) {
	f(w, r, vc)
}

// VisibilityFunc scopes a unit to a subset of instances of the type it is
// registered on (e.g. only one concrete subtype). It must be pure with
// respect to registry state. instance may be nil when no instance is in
// scope.
type VisibilityFunc func(p auth.Principal, instance entity.Instance) bool

// VisibleForTypes returns a predicate admitting only instances whose
// concrete type is one of the given tags. The set is closed at
// registration time.
func VisibleForTypes(types ...*entity.Type) VisibilityFunc {
	return func(_ auth.Principal, instance entity.Instance) bool {
		if instance == nil {
			return false
		}
		for _, t := range types {
			if instance.EntityType().IsSubtypeOf(t) {
				return true
			}
		}
		return false
	}
}

// Menu declares the tab a unit contributes to the detail page. A nil Menu
// disables tab generation; the unit stays reachable by direct route.
type Menu struct {
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
	Order int    `json:"order"`
}

// Assets lists the stylesheet and script references a descriptor wants
// merged into its response context.
type Assets struct {
	Stylesheets []string `json:"stylesheets,omitempty"`
	Scripts     []string `json:"scripts,omitempty"`
}

func (a Assets) IsZero() bool {
	return len(a.Stylesheets) == 0 && len(a.Scripts) == 0
}

// Unit is either a *Descriptor or a *Group. The interface is sealed; the
// registry rejects anything else at registration time.
type Unit interface {
	// UnitName returns the identifier that must be unique among all units
	// registered for the same entity type.
	UnitName() string
	// UnitMenu returns the unit's tab declaration, or nil.
	UnitMenu() *Menu
	// Routes returns the unit's composed route tuples.
	Routes() []Route

	sealedUnit()
}

// Route is one (path template, handler, name) tuple produced by a unit.
// Paths are relative to the entity detail mount point and end with a
// trailing slash. The unexported binding fields carry everything dispatch
// needs: the gates to evaluate and the descriptor that owns the view.
type Route struct {
	Path    string
	Name    string
	Handler Handler

	owner       *Descriptor
	permissions []string
	visibility  []VisibilityFunc
}

// Owner returns the descriptor this route dispatches to.
func (r Route) Owner() *Descriptor { return r.owner }

// GatePermissions returns the permission strings checked at this route,
// outermost first (group gate before member gate).
func (r Route) GatePermissions() []string { return r.permissions }

func (r Route) visible(p auth.Principal, instance entity.Instance) bool {
	for _, v := range r.visibility {
		if v != nil && !v(p, instance) {
			return false
		}
	}
	return true
}

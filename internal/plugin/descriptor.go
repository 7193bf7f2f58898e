package plugin

import (
	"reflect"
	"strings"
	"unicode"
)

// Descriptor is the atomic extension unit: one addressable view plus the
// metadata the registry needs to route, gate and list it.
type Descriptor struct {
	// Name identifies the descriptor within one entity type. When empty
	// it is derived from the handler's type name via slugification.
	Name string

	// RouteSegment is the URL path segment. Defaults to the resolved name.
	RouteSegment string

	// Template overrides the resolved template name. TemplateOnly skips
	// the type hierarchy so only the override and the base fallback are
	// tried.
	Template     string
	TemplateOnly bool

	// Permission gates both the route and the tab. Empty means public.
	Permission string

	// Visible further scopes the descriptor to a subset of instances.
	Visible VisibilityFunc

	// Menu declares the tab; nil means direct-route access only.
	Menu *Menu

	// Handler serves the view.
	Handler Handler

	// Assets are merged into the view context for the renderer.
	Assets Assets

	// SubRoutes are auxiliary routes sharing the descriptor's base
	// segment, e.g. a download action next to an export view.
	SubRoutes []SubRoute
}

// SubRoute is an auxiliary route under a descriptor's segment.
type SubRoute struct {
	// Path is appended to the descriptor's segment, e.g. "download".
	Path string
	// Name suffixes the descriptor's route name, joined with a hyphen.
	Name string
	// Handler defaults to the descriptor's own handler when nil.
	Handler Handler
}

func (d *Descriptor) sealedUnit() {}

// ResolvedName returns the explicit name or one slugified from the
// handler's type name, with a trailing "Handler" trimmed first.
func (d *Descriptor) ResolvedName() string {
	if d.Name != "" {
		return Slugify(d.Name)
	}
	if d.Handler == nil {
		return ""
	}
	t := reflect.TypeOf(d.Handler)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := strings.TrimSuffix(t.Name(), "Handler")
	return Slugify(name)
}

// UnitName implements Unit.
func (d *Descriptor) UnitName() string { return d.ResolvedName() }

// UnitMenu implements Unit.
func (d *Descriptor) UnitMenu() *Menu { return d.Menu }

// ResolvedRouteSegment returns the explicit segment or the resolved name.
func (d *Descriptor) ResolvedRouteSegment() string {
	if d.RouteSegment != "" {
		return d.RouteSegment
	}
	return d.ResolvedName()
}

// PrimaryRoute returns the descriptor's main route, the one a tab links to.
func (d *Descriptor) PrimaryRoute() Route {
	return Route{
		Path:        d.ResolvedRouteSegment() + "/",
		Name:        d.ResolvedName(),
		Handler:     d.Handler,
		owner:       d,
		permissions: gate(d.Permission),
		visibility:  []VisibilityFunc{d.Visible},
	}
}

// Routes implements Unit. The primary route comes first, followed by any
// auxiliary sub-routes under the same segment.
func (d *Descriptor) Routes() []Route {
	routes := []Route{d.PrimaryRoute()}
	seg := d.ResolvedRouteSegment()
	name := d.ResolvedName()
	for _, sr := range d.SubRoutes {
		h := sr.Handler
		if h == nil {
			h = d.Handler
		}
		routes = append(routes, Route{
			Path:        seg + "/" + strings.Trim(sr.Path, "/") + "/",
			Name:        name + "-" + sr.Name,
			Handler:     h,
			owner:       d,
			permissions: gate(d.Permission),
			visibility:  []VisibilityFunc{d.Visible},
		})
	}
	return routes
}

func gate(perms ...string) []string {
	var out []string
	for _, p := range perms {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Slugify converts a PascalCase or free-form identifier to a kebab-case
// URL segment: "SampleOverview" → "sample-overview". Runs of separators
// collapse to a single hyphen and leading/trailing hyphens are stripped.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

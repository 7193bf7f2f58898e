package plugin

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"SampleOverview", "sample-overview"},
		{"Overview", "overview"},
		{"overview", "overview"},
		{"HTTPExport", "http-export"},
		{"Sample  Data", "sample-data"},
		{"--Already-Kebab--", "already-kebab"},
		{"Rock_Sample2", "rock-sample2"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

type SampleTimelineHandler struct{ nopHandler }

func TestResolvedNameFromHandlerType(t *testing.T) {
	d := &Descriptor{Handler: &SampleTimelineHandler{}}
	if got := d.ResolvedName(); got != "sample-timeline" {
		t.Errorf("ResolvedName = %q, want %q", got, "sample-timeline")
	}
	if got := d.ResolvedRouteSegment(); got != "sample-timeline" {
		t.Errorf("ResolvedRouteSegment = %q, want %q", got, "sample-timeline")
	}
}

func TestResolvedNameExplicit(t *testing.T) {
	d := &Descriptor{Name: "Overview", RouteSegment: "home", Handler: nopHandler{}}
	if got := d.ResolvedName(); got != "overview" {
		t.Errorf("ResolvedName = %q, want %q", got, "overview")
	}
	if got := d.ResolvedRouteSegment(); got != "home" {
		t.Errorf("ResolvedRouteSegment = %q, want %q", got, "home")
	}
}

func TestDescriptorRoutes(t *testing.T) {
	d := &Descriptor{
		Name:    "Export",
		Handler: nopHandler{},
		SubRoutes: []SubRoute{
			{Path: "download", Name: "download"},
		},
	}
	routes := d.Routes()
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].Path != "export/" || routes[0].Name != "export" {
		t.Errorf("primary route = %q (%q)", routes[0].Path, routes[0].Name)
	}
	if routes[1].Path != "export/download/" || routes[1].Name != "export-download" {
		t.Errorf("sub-route = %q (%q)", routes[1].Path, routes[1].Name)
	}
	if routes[1].Handler == nil {
		t.Error("sub-route without handler should inherit the descriptor's")
	}
	if routes[0].Owner() != d {
		t.Error("route owner should be the descriptor")
	}
}

func TestDescriptorGate(t *testing.T) {
	d := &Descriptor{Name: "Edit", Permission: "can-edit", Handler: nopHandler{}}
	perms := d.PrimaryRoute().GatePermissions()
	if len(perms) != 1 || perms[0] != "can-edit" {
		t.Errorf("gate permissions = %v", perms)
	}

	open := descriptorNamed("Open")
	if perms := open.PrimaryRoute().GatePermissions(); len(perms) != 0 {
		t.Errorf("open descriptor gate = %v, want empty", perms)
	}
}

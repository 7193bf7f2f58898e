package plugin

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/rbac"
)

func tabLabels(tabs []Tab) []string {
	out := make([]string, len(tabs))
	for i, tab := range tabs {
		out[i] = tab.Label
	}
	return out
}

func equalLabels(got []Tab, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, w := range want {
		if got[i].Label != w {
			return false
		}
	}
	return true
}

func TestTabsPermissionFiltering(t *testing.T) {
	sample, _, _ := newTestTypes()
	inst := newInstance(sample, "s1")

	reg := NewRegistry()
	overview := &Descriptor{Name: "Overview", Menu: &Menu{Label: "Overview", Order: 0}, Handler: nopHandler{}}
	edit := &Descriptor{Name: "Edit", Permission: "can-edit", Menu: &Menu{Label: "Edit", Order: 50}, Handler: nopHandler{}}
	for _, u := range []Unit{overview, edit} {
		if err := reg.Register([]*entity.Type{sample}, u); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	oracle := &rbac.StaticOracle{
		Grants: map[string][]string{"editor": {"can-edit"}},
		ObjectGrants: map[string]map[uuid.UUID][]string{
			"editor": {inst.ID(): {"can-edit"}},
		},
	}
	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(oracle))

	viewer := auth.Principal{ID: "viewer"}
	tabs := srv.TabsFor(context.Background(), sample, viewer, inst, "")
	if !equalLabels(tabs, "Overview") {
		t.Errorf("viewer tabs = %v, want [Overview]", tabLabels(tabs))
	}

	editor := auth.Principal{ID: "editor"}
	tabs = srv.TabsFor(context.Background(), sample, editor, inst, "")
	if !equalLabels(tabs, "Overview", "Edit") {
		t.Errorf("editor tabs = %v, want [Overview, Edit]", tabLabels(tabs))
	}
}

func TestTabsStableSortPreservesTies(t *testing.T) {
	sample, _, _ := newTestTypes()
	inst := newInstance(sample, "s1")

	reg := NewRegistry()
	names := []string{"First", "Second", "Third"}
	for _, n := range names {
		d := &Descriptor{Name: n, Menu: &Menu{Label: n, Order: 10}, Handler: nopHandler{}}
		if err := reg.Register([]*entity.Type{sample}, d); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	last := &Descriptor{Name: "Zeroth", Menu: &Menu{Label: "Zeroth", Order: 0}, Handler: nopHandler{}}
	if err := reg.Register([]*entity.Type{sample}, last); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(&rbac.StaticOracle{}))
	tabs := srv.TabsFor(context.Background(), sample, auth.Anonymous, inst, "")
	if !equalLabels(tabs, "Zeroth", "First", "Second", "Third") {
		t.Errorf("tabs = %v", tabLabels(tabs))
	}
}

func TestMenulessUnitHasRouteButNoTab(t *testing.T) {
	sample, _, _ := newTestTypes()
	inst := newInstance(sample, "s1")

	reg := NewRegistry()
	if err := reg.Register([]*entity.Type{sample}, descriptorNamed("Discussion")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(&rbac.StaticOracle{}))
	if tabs := srv.TabsFor(context.Background(), sample, auth.Anonymous, inst, ""); len(tabs) != 0 {
		t.Errorf("menu-less unit should emit no tabs, got %v", tabLabels(tabs))
	}
	if routes := ComposeRoutes(reg, sample); len(routes) != 1 || routes[0].Path != "discussion/" {
		t.Errorf("menu-less unit should still compose routes, got %v", routes)
	}
}

func TestGroupEmitsSingleTabToDefaultRoute(t *testing.T) {
	_, _, dataset := newTestTypes()
	inst := newInstance(dataset, "d1")

	reg := NewRegistry()
	g := &Group{
		Name:        "Metadata",
		RoutePrefix: "metadata",
		Menu:        &Menu{Label: "Metadata", Order: 10},
		Members:     []*Descriptor{descriptorNamed("View"), descriptorNamed("Edit")},
	}
	if err := reg.Register([]*entity.Type{dataset}, g); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(&rbac.StaticOracle{}))
	tabs := srv.TabsFor(context.Background(), dataset, auth.Anonymous, inst, "")
	if !equalLabels(tabs, "Metadata") {
		t.Fatalf("tabs = %v, want [Metadata]", tabLabels(tabs))
	}
	wantURL := srv.DetailBase(dataset, inst.ID()) + "metadata/view/"
	if tabs[0].URL != wantURL {
		t.Errorf("group tab URL = %q, want %q", tabs[0].URL, wantURL)
	}
}

func TestGroupTabIgnoresMemberPermissions(t *testing.T) {
	_, _, dataset := newTestTypes()
	inst := newInstance(dataset, "d1")

	reg := NewRegistry()
	g := &Group{
		Name:        "Metadata",
		RoutePrefix: "metadata",
		Menu:        &Menu{Label: "Metadata", Order: 10},
		Members: []*Descriptor{
			descriptorNamed("View"),
			{Name: "Edit", Permission: "metadata.edit", Handler: nopHandler{}},
		},
	}
	if err := reg.Register([]*entity.Type{dataset}, g); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// No grants at all: the tab still shows because only the group-level
	// gate applies to tab visibility.
	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(&rbac.StaticOracle{}))
	tabs := srv.TabsFor(context.Background(), dataset, auth.Principal{ID: "nobody"}, inst, "")
	if !equalLabels(tabs, "Metadata") {
		t.Errorf("tabs = %v, want [Metadata]", tabLabels(tabs))
	}
}

func TestTabsVisibilityScoping(t *testing.T) {
	sample, rock, _ := newTestTypes()

	reg := NewRegistry()
	d := &Descriptor{
		Name:    "Activity",
		Menu:    &Menu{Label: "Activity", Order: 30},
		Visible: VisibleForTypes(rock),
		Handler: nopHandler{},
	}
	if err := reg.Register([]*entity.Type{sample}, d); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	srv := NewServer(reg, newStubLoader(), NewEvaluator(&rbac.StaticOracle{}))

	plain := newInstance(sample, "s1")
	if tabs := srv.TabsFor(context.Background(), sample, auth.Anonymous, plain, ""); len(tabs) != 0 {
		t.Errorf("plain sample should not see the scoped tab, got %v", tabLabels(tabs))
	}

	rocky := newInstance(rock, "r1")
	tabs := srv.TabsFor(context.Background(), rock, auth.Anonymous, rocky, "")
	if !equalLabels(tabs, "Activity") {
		t.Errorf("rock sample tabs = %v, want [Activity]", tabLabels(tabs))
	}
}

func TestTabsIsolateBrokenUnits(t *testing.T) {
	sample, _, _ := newTestTypes()
	inst := newInstance(sample, "s1")

	reg := NewRegistry()
	broken := &Descriptor{
		Name:    "Broken",
		Menu:    &Menu{Label: "Broken", Order: 5},
		Visible: func(auth.Principal, entity.Instance) bool { panic("boom") },
		Handler: nopHandler{},
	}
	ok := &Descriptor{Name: "Overview", Menu: &Menu{Label: "Overview", Order: 10}, Handler: nopHandler{}}
	for _, u := range []Unit{broken, ok} {
		if err := reg.Register([]*entity.Type{sample}, u); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(&rbac.StaticOracle{}))
	tabs := srv.TabsFor(context.Background(), sample, auth.Anonymous, inst, "")
	if !equalLabels(tabs, "Overview") {
		t.Errorf("broken unit should be skipped, got %v", tabLabels(tabs))
	}
}

func TestTabCurrentFlags(t *testing.T) {
	sample, _, _ := newTestTypes()
	inst := newInstance(sample, "s1")

	reg := NewRegistry()
	overview := &Descriptor{Name: "Overview", Menu: &Menu{Label: "Overview", Order: 0}, Handler: nopHandler{}}
	g := &Group{
		Name:        "Metadata",
		RoutePrefix: "metadata",
		Menu:        &Menu{Label: "Metadata", Order: 10},
		Members:     []*Descriptor{descriptorNamed("View"), descriptorNamed("Edit")},
	}
	for _, u := range []Unit{overview, g} {
		if err := reg.Register([]*entity.Type{sample}, u); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(&rbac.StaticOracle{}))
	base := srv.DetailBase(sample, inst.ID())

	// Any path under the group prefix marks the group tab current.
	tabs := srv.TabsFor(context.Background(), sample, auth.Anonymous, inst, base+"metadata/edit/")
	if tabs[0].Current {
		t.Error("overview tab should not be current on a metadata page")
	}
	if !tabs[1].Current {
		t.Error("group tab should be current for a member page")
	}

	tabs = srv.TabsFor(context.Background(), sample, auth.Anonymous, inst, base+"overview/")
	if !tabs[0].Current || tabs[1].Current {
		t.Errorf("overview page: current flags = %v, %v", tabs[0].Current, tabs[1].Current)
	}
}

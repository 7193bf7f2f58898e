package plugin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/rbac"
)

type recordingAudit struct {
	actions   []string
	resources []string
}

func (a *recordingAudit) Record(_ context.Context, _ string, action, resource string, _ map[string]any) {
	a.actions = append(a.actions, action)
	a.resources = append(a.resources, resource)
}

func serveAs(t *testing.T, router *mux.Router, p auth.Principal, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(auth.ContextWithPrincipal(req.Context(), p))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestDispatchUnknownInstance(t *testing.T) {
	sample, _, _ := newTestTypes()
	reg := NewRegistry()
	mustRegister(t, reg, []*entity.Type{sample}, descriptorNamed("Overview"))

	srv := NewServer(reg, newStubLoader(), NewEvaluator(&rbac.StaticOracle{}))
	router := mux.NewRouter()
	srv.Mount(router, sample)

	rr := serveAs(t, router, auth.Anonymous, "/sample/"+uuid.NewString()+"/overview/")
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id: got status %d, want 404", rr.Code)
	}

	rr = serveAs(t, router, auth.Anonymous, "/sample/not-a-uuid/overview/")
	if rr.Code != http.StatusNotFound {
		t.Errorf("malformed id: got status %d, want 404", rr.Code)
	}
}

func TestDispatchDeniedRecordsAudit(t *testing.T) {
	sample, _, _ := newTestTypes()
	inst := newInstance(sample, "SA-001")
	reg := NewRegistry()
	mustRegister(t, reg, []*entity.Type{sample}, &Descriptor{
		Name: "Edit", Permission: "metadata.edit", Handler: nopHandler{},
	})

	audit := &recordingAudit{}
	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(&rbac.StaticOracle{}), WithAuditLog(audit))
	router := mux.NewRouter()
	srv.Mount(router, sample)

	viewer := auth.Principal{ID: "u-viewer"}
	rr := serveAs(t, router, viewer, "/sample/"+inst.ID().String()+"/edit/")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want 403", rr.Code)
	}
	if len(audit.actions) != 1 || audit.actions[0] != "plugin.denied" {
		t.Errorf("audit actions = %v, want one plugin.denied", audit.actions)
	}
	if audit.resources[0] != "edit" {
		t.Errorf("audit resource = %q, want route name edit", audit.resources[0])
	}
}

func TestDispatchAllowed(t *testing.T) {
	sample, _, _ := newTestTypes()
	inst := newInstance(sample, "SA-001")
	reg := NewRegistry()
	mustRegister(t, reg, []*entity.Type{sample}, &Descriptor{
		Name: "Edit", Permission: "metadata.edit", Handler: nopHandler{},
	})

	oracle := &rbac.StaticOracle{
		Grants: map[string][]string{"u-editor": {"metadata.edit"}},
		ObjectGrants: map[string]map[uuid.UUID][]string{
			"u-editor": {inst.ID(): {"metadata.edit"}},
		},
	}
	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(oracle))
	router := mux.NewRouter()
	srv.Mount(router, sample)

	path := "/sample/" + inst.ID().String() + "/edit/"
	rr := serveAs(t, router, auth.Principal{ID: "u-editor"}, path)
	if rr.Code != http.StatusOK {
		t.Errorf("editor: got status %d, want 200 (body %q)", rr.Code, rr.Body.String())
	}

	// Type-level grant alone is not enough when the instance tier denies.
	halfOracle := &rbac.StaticOracle{Grants: map[string][]string{"u-half": {"metadata.edit"}}}
	halfSrv := NewServer(reg, newStubLoader(inst), NewEvaluator(halfOracle))
	halfRouter := mux.NewRouter()
	halfSrv.Mount(halfRouter, sample)
	if rr := serveAs(t, halfRouter, auth.Principal{ID: "u-half"}, path); rr.Code != http.StatusForbidden {
		t.Errorf("type-level only: got status %d, want 403", rr.Code)
	}

	// Superusers bypass both tiers.
	if rr := serveAs(t, router, auth.Principal{ID: "root", Superuser: true}, path); rr.Code != http.StatusOK {
		t.Errorf("superuser: got status %d, want 200", rr.Code)
	}
}

func TestDispatchSubRoute(t *testing.T) {
	dataset := entity.NewType("fairdm", "dataset", nil)
	inst := newInstance(dataset, "DS-001")
	reg := NewRegistry()
	mustRegister(t, reg, []*entity.Type{dataset}, &Descriptor{
		Name:    "Export",
		Handler: nopHandler{},
		SubRoutes: []SubRoute{
			{Path: "download", Name: "download", Handler: nopHandler{}},
		},
	})

	srv := NewServer(reg, newStubLoader(inst), NewEvaluator(&rbac.StaticOracle{}))
	router := mux.NewRouter()
	srv.Mount(router, dataset)

	base := "/dataset/" + inst.ID().String() + "/"
	for _, path := range []string{base + "export/", base + "export/download/"} {
		if rr := serveAs(t, router, auth.Anonymous, path); rr.Code != http.StatusOK {
			t.Errorf("%s: got status %d, want 200", path, rr.Code)
		}
	}
}

func TestDispatchGroupMemberGate(t *testing.T) {
	sample, _, _ := newTestTypes()
	inst := newInstance(sample, "SA-001")
	reg := NewRegistry()
	mustRegister(t, reg, []*entity.Type{sample}, &Group{
		Name:       "Metadata",
		Permission: "metadata.view",
		Members: []*Descriptor{
			descriptorNamed("View"),
			{Name: "Edit", Permission: "metadata.edit", Handler: nopHandler{}},
		},
	})

	grants := func(perms ...string) *rbac.StaticOracle {
		return &rbac.StaticOracle{
			Grants: map[string][]string{"u": perms},
			ObjectGrants: map[string]map[uuid.UUID][]string{
				"u": {inst.ID(): perms},
			},
		}
	}
	mount := func(o rbac.Oracle) *mux.Router {
		router := mux.NewRouter()
		NewServer(reg, newStubLoader(inst), NewEvaluator(o)).Mount(router, sample)
		return router
	}
	u := auth.Principal{ID: "u"}
	base := "/sample/" + inst.ID().String() + "/metadata/"

	// Group permission alone opens the ungated member route.
	if rr := serveAs(t, mount(grants("metadata.view")), u, base+"view/"); rr.Code != http.StatusOK {
		t.Errorf("view with group grant: got %d, want 200", rr.Code)
	}
	// The gated member needs its own permission on top of the group's.
	if rr := serveAs(t, mount(grants("metadata.view")), u, base+"edit/"); rr.Code != http.StatusForbidden {
		t.Errorf("edit with group grant only: got %d, want 403", rr.Code)
	}
	if rr := serveAs(t, mount(grants("metadata.edit")), u, base+"edit/"); rr.Code != http.StatusForbidden {
		t.Errorf("edit with member grant only: got %d, want 403", rr.Code)
	}
	if rr := serveAs(t, mount(grants("metadata.view", "metadata.edit")), u, base+"edit/"); rr.Code != http.StatusOK {
		t.Errorf("edit with both grants: got %d, want 200", rr.Code)
	}
}

func TestDispatchVisibilityHidesRoute(t *testing.T) {
	sample, rock, _ := newTestTypes()
	plain := newInstance(sample, "SA-001")
	rocky := newInstance(rock, "RS-001")
	reg := NewRegistry()
	mustRegister(t, reg, []*entity.Type{sample}, &Descriptor{
		Name:    "Timeline",
		Visible: VisibleForTypes(rock),
		Handler: nopHandler{},
	})

	srv := NewServer(reg, newStubLoader(plain, rocky), NewEvaluator(&rbac.StaticOracle{}))
	router := mux.NewRouter()
	srv.Mount(router, sample, rock)

	if rr := serveAs(t, router, auth.Anonymous, "/sample/"+plain.ID().String()+"/timeline/"); rr.Code != http.StatusNotFound {
		t.Errorf("plain sample: got %d, want 404 for a scoped-away route", rr.Code)
	}
	if rr := serveAs(t, router, auth.Anonymous, "/rock-sample/"+rocky.ID().String()+"/timeline/"); rr.Code != http.StatusOK {
		t.Errorf("rock sample: got %d, want 200", rr.Code)
	}
}

func TestBuildContextBreadcrumbs(t *testing.T) {
	project := entity.NewType("fairdm", "project", nil)
	dataset := entity.NewType("fairdm", "dataset", nil)

	proj := newInstance(project, "Mantle Survey")
	ds := newInstance(dataset, "Heat Flow 2025")
	ds.ParentRecord = proj

	reg := NewRegistry()
	d := &Descriptor{Name: "Overview", Menu: &Menu{Label: "Overview"}, Handler: nopHandler{}}
	mustRegister(t, reg, []*entity.Type{dataset}, d)

	srv := NewServer(reg, newStubLoader(ds), NewEvaluator(&rbac.StaticOracle{}), WithBasePath("/explore"))
	vc := srv.BuildContext(context.Background(), dataset, d, auth.Anonymous, ds, "/explore/dataset/"+ds.ID().String()+"/overview/")

	labels := make([]string, len(vc.Breadcrumbs))
	for i, c := range vc.Breadcrumbs {
		labels[i] = c.Label
	}
	want := []string{"Mantle Survey", "Heat Flow 2025", "Overview"}
	if len(labels) != len(want) {
		t.Fatalf("breadcrumbs = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("crumb %d = %q, want %q", i, labels[i], want[i])
		}
	}
	if !strings.HasPrefix(vc.Breadcrumbs[0].URL, "/explore/project/") {
		t.Errorf("root crumb URL = %q, want /explore/project/ prefix", vc.Breadcrumbs[0].URL)
	}
	if vc.Breadcrumbs[2].URL != "" {
		t.Errorf("terminal crumb must carry no URL, got %q", vc.Breadcrumbs[2].URL)
	}
	if len(vc.Templates) == 0 {
		t.Error("expected template candidates on the view context")
	}
}

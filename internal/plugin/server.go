package plugin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/httputil"
)

// AuditLog receives operational events (permission denials, tab-build
// failures). Implementations must tolerate a nil receiver being skipped;
// the server treats a nil AuditLog as "don't record".
type AuditLog interface {
	Record(ctx context.Context, userID, action, resource string, details map[string]any)
}

// Server dispatches plugin routes for a validated registry. It holds no
// per-request state; everything here is safe for concurrent use once
// startup completes.
type Server struct {
	registry *Registry
	loader   entity.Loader
	eval     *Evaluator
	basePath string
	audit    AuditLog
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithBasePath mounts entity detail pages under the given URL prefix.
func WithBasePath(base string) ServerOption {
	return func(s *Server) {
		s.basePath = "/" + strings.Trim(base, "/")
		if s.basePath == "/" {
			s.basePath = ""
		}
	}
}

// WithAuditLog records denials and tab failures to the given log.
func WithAuditLog(a AuditLog) ServerOption {
	return func(s *Server) { s.audit = a }
}

func NewServer(registry *Registry, loader entity.Loader, eval *Evaluator, opts ...ServerOption) *Server {
	s := &Server{
		registry: registry,
		loader:   loader,
		eval:     eval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DetailBase returns the URL under which the instance's plugin routes
// are mounted: {basePath}/{typeSlug}/{id}/.
func (s *Server) DetailBase(t *entity.Type, id uuid.UUID) string {
	return fmt.Sprintf("%s/%s/%s/", s.basePath, t.Slug(), id)
}

// Mount attaches the composed route table of every given entity type to
// the router. Route names stay internal to the registry; mux paths alone
// identify the handlers.
func (s *Server) Mount(router *mux.Router, types ...*entity.Type) {
	for _, t := range types {
		sub := router.PathPrefix("/" + t.Slug() + "/{id}").Subrouter()
		for _, rt := range ComposeRoutes(s.registry, t) {
			sub.HandleFunc("/"+rt.Path, s.dispatch(t, rt)).Methods("GET", "POST")
		}
	}
}

// dispatch is the per-route gate: resolve the instance (404 if absent),
// evaluate permissions (403 if denied), then invoke the handler with a
// fully-built view context.
func (s *Server) dispatch(t *entity.Type, rt Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			httputil.WriteError(w, http.StatusNotFound, "not found")
			return
		}

		instance, err := s.loader.Fetch(ctx, t, id)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				httputil.WriteError(w, http.StatusNotFound, "not found")
				return
			}
			log.Printf("plugin: fetch %s/%s failed: %v", t.Key(), id, err)
			httputil.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		p := auth.PrincipalFromContext(ctx)

		// A unit scoped away from this instance does not exist at this URL.
		if !rt.visible(p, instance) {
			httputil.WriteError(w, http.StatusNotFound, "not found")
			return
		}

		allowed, err := s.eval.AllowedAll(ctx, p, rt.permissions, instance)
		if err != nil {
			log.Printf("plugin: permission check for %q failed: %v", rt.Name, err)
			httputil.WriteError(w, http.StatusInternalServerError, "permission check failed")
			return
		}
		if !allowed {
			s.record(ctx, p, "plugin.denied", rt.Name, map[string]any{
				"entity": t.Key(),
				"id":     id.String(),
			})
			httputil.WriteError(w, http.StatusForbidden, "insufficient permissions")
			return
		}

		vc := s.BuildContext(ctx, t, rt.owner, p, instance, r.URL.Path)
		rt.Handler.ServeEntity(w, r, vc)
	}
}

// BuildContext assembles the view context for a descriptor serving the
// given instance: breadcrumb chain from the containment hierarchy, the
// permission- and visibility-filtered tab list, template candidates and
// the descriptor's static assets.
func (s *Server) BuildContext(ctx context.Context, t *entity.Type, d *Descriptor, p auth.Principal, instance entity.Instance, currentPath string) *ViewContext {
	vc := &ViewContext{
		Entity:    t,
		Instance:  instance,
		Principal: p,
		Tabs:      s.TabsFor(ctx, t, p, instance, currentPath),
	}
	if d != nil {
		vc.Templates = d.TemplateCandidates(t)
		vc.Assets = d.Assets
	}

	var chain []entity.Instance
	for node := instance; node != nil; node = node.Parent() {
		chain = append(chain, node)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		node := chain[i]
		vc.Breadcrumbs = append(vc.Breadcrumbs, Crumb{
			Label: node.Label(),
			URL:   s.DetailBase(node.EntityType(), node.ID()),
		})
	}
	if d != nil {
		label := d.ResolvedName()
		if d.Menu != nil && d.Menu.Label != "" {
			label = d.Menu.Label
		}
		vc.Breadcrumbs = append(vc.Breadcrumbs, Crumb{Label: label})
	}
	return vc
}

func (s *Server) record(ctx context.Context, p auth.Principal, action, resource string, details map[string]any) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, p.ID, action, resource, details)
}

package plugin

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/FAIR-DM/fairdm-sub001/internal/httputil"
)

// Handlers exposes read-only registry introspection over HTTP.
type Handlers struct {
	registry *Registry
}

func NewHandlers(registry *Registry) *Handlers {
	return &Handlers{registry: registry}
}

// RegisterRoutes mounts the introspection API.
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/plugins", h.List).Methods("GET")
}

type unitInfo struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Menu   *Menu    `json:"menu,omitempty"`
	Routes []string `json:"routes"`
}

// List returns every registered unit per entity type, with its composed
// route paths.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]unitInfo)
	for _, t := range h.registry.Types() {
		for _, u := range h.registry.unitsDirect(t) {
			info := unitInfo{Name: u.UnitName(), Menu: u.UnitMenu()}
			switch u.(type) {
			case *Descriptor:
				info.Kind = "descriptor"
			case *Group:
				info.Kind = "group"
			}
			for _, rt := range u.Routes() {
				info.Routes = append(info.Routes, rt.Path)
			}
			out[t.Key()] = append(out[t.Key()], info)
		}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

package audit

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/httputil"
)

// Handlers exposes the audit trail to superusers.
type Handlers struct {
	store *Store
}

func NewHandlers(store *Store) *Handlers {
	return &Handlers{store: store}
}

func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/audit", h.List).Methods("GET")
}

// List returns the most recent audit entries, newest first.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalFromContext(r.Context())
	if !p.Superuser {
		httputil.WriteError(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	if h.store == nil || h.store.pool == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, "audit log unavailable")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.store.List(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list audit entries")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

package metadata

import (
	"net/http"

	"github.com/FAIR-DM/fairdm-sub001/internal/httputil"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// ViewHandler renders the read-only metadata panel.
type ViewHandler struct{}

func (h *ViewHandler) ServeEntity(w http.ResponseWriter, r *http.Request, vc *plugin.ViewContext) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"entity":    vc.Entity.Key(),
		"id":        vc.Instance.ID(),
		"label":     vc.Instance.Label(),
		"mode":      "view",
		"templates": vc.Templates,
	})
}

// EditHandler renders the metadata editor. Dispatch has already enforced
// EditPermission by the time this runs.
type EditHandler struct{}

func (h *EditHandler) ServeEntity(w http.ResponseWriter, r *http.Request, vc *plugin.ViewContext) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"entity":    vc.Entity.Key(),
		"id":        vc.Instance.ID(),
		"label":     vc.Instance.Label(),
		"mode":      "edit",
		"templates": vc.Templates,
	})
}

package overview

import (
	"net/http"

	"github.com/FAIR-DM/fairdm-sub001/internal/httputil"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// Handler renders the overview payload. What the detail page shows is the
// renderer's business; the view hands over the instance, its breadcrumb
// chain and the tab list.
type Handler struct{}

func (h *Handler) ServeEntity(w http.ResponseWriter, r *http.Request, vc *plugin.ViewContext) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"entity":      vc.Entity.Key(),
		"id":          vc.Instance.ID(),
		"label":       vc.Instance.Label(),
		"breadcrumbs": vc.Breadcrumbs,
		"tabs":        vc.Tabs,
		"templates":   vc.Templates,
	})
}

package discussion

import (
	"net/http"

	"github.com/FAIR-DM/fairdm-sub001/internal/httputil"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// ThreadHandler renders the comment thread for one instance.
type ThreadHandler struct{}

func (h *ThreadHandler) ServeEntity(w http.ResponseWriter, r *http.Request, vc *plugin.ViewContext) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"entity":    vc.Entity.Key(),
		"id":        vc.Instance.ID(),
		"label":     vc.Instance.Label(),
		"comments":  []any{},
		"templates": vc.Templates,
	})
}

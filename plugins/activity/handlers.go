package activity

import (
	"net/http"

	"github.com/FAIR-DM/fairdm-sub001/internal/httputil"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// TimelineHandler renders the activity timeline for one instance.
type TimelineHandler struct{}

func (h *TimelineHandler) ServeEntity(w http.ResponseWriter, r *http.Request, vc *plugin.ViewContext) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"entity":    vc.Entity.Key(),
		"id":        vc.Instance.ID(),
		"label":     vc.Instance.Label(),
		"timeline":  []any{},
		"templates": vc.Templates,
	})
}

package export

import (
	"fmt"
	"net/http"

	"github.com/FAIR-DM/fairdm-sub001/internal/httputil"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
)

// PageHandler renders the export options page.
type PageHandler struct{}

func (h *PageHandler) ServeEntity(w http.ResponseWriter, r *http.Request, vc *plugin.ViewContext) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"entity":    vc.Entity.Key(),
		"id":        vc.Instance.ID(),
		"label":     vc.Instance.Label(),
		"formats":   []string{"csv", "json"},
		"assets":    vc.Assets,
		"templates": vc.Templates,
	})
}

// DownloadHandler streams the export itself.
type DownloadHandler struct{}

func (h *DownloadHandler) ServeEntity(w http.ResponseWriter, r *http.Request, vc *plugin.ViewContext) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", vc.Instance.ID().String()+".csv"))
	fmt.Fprintf(w, "id,label,type\n%s,%s,%s\n",
		vc.Instance.ID(), vc.Instance.Label(), vc.Entity.Key())
}

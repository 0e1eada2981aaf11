package api

import "net/http"

// ModelsHandler handles GET /api/models. hasDefaultKey tells the page
// whether the server holds a credential, so the form knows when a key must
// be entered before an action can dispatch.
func ModelsHandler(models []string, hasDefaultKey bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp struct {
			Models        []string `json:"models"`
			HasDefaultKey bool     `json:"has_default_key"`
		}
		resp.Models = models
		resp.HasDefaultKey = hasDefaultKey
		writeJSON(w, resp)
	}
}

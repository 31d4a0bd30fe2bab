package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"edudash.insights.org/internal/webui"
)

func validateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// get registers an authenticated GET route whose metrics are labelled name.
func (api *RestAPI) get(router *httprouter.Router, name, path string, h http.HandlerFunc) {
	router.Handler(http.MethodGet, path, api.Metrics.Instrument(name, validateAPIKey(api, h)))
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	api.get(router, "options", "/api/v1/options/:column", api.optionsHandler)
	api.get(router, "records", "/api/v1/records", api.recordsHandler)
	api.get(router, "country", "/api/v1/records/:country", api.countryHandler)
	api.get(router, "kpis", "/api/v1/kpis", api.kpisHandler)
	api.get(router, "grouped_mean", "/api/v1/grouped-mean", api.groupedMeanHandler)
	api.get(router, "top", "/api/v1/top/:column", api.topHandler)
	api.get(router, "category_counts", "/api/v1/category-counts/:continent", api.categoryCountsHandler)
	api.get(router, "correlation", "/api/v1/correlation", api.correlationHandler)
	api.get(router, "pages", "/api/v1/pages/:page", api.pageHandler)
	api.get(router, "status", "/api/v1/status", api.statusHandler)

	debugUI := &webui.WebUI{Application: api.Application}
	debugUI.SetWebUIRoutes(router)

	if api.Config.MetricsEnabled && api.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
	}

	router.NotFound = http.HandlerFunc(api.sendNotFound)
}

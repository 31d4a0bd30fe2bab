package restapi

import (
	"errors"
	"net/http"
	"time"

	"edudash.insights.org/internal/dashboard"
	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/utils"
)

// pageHandler returns every chart table of one dashboard page. Filters only
// apply to the home page.
func (api *RestAPI) pageHandler(w http.ResponseWriter, r *http.Request) {
	raw := utils.ExtractParam(r, "page")

	if err := utils.ValidateID(raw); err != nil {
		api.validationErrorResponse(w, r, utils.FieldErrors{"page": {err.Error()}})
		return
	}

	page, err := dashboard.ParsePage(raw)
	if errors.Is(err, dashboard.ErrUnknownPage) {
		api.sendNotFound(w, r)
		return
	}

	fieldErrors := utils.FieldErrors{}
	sel := utils.ParseSelection(r.URL.Query(), fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	start := time.Now()
	view, err := dashboard.Build(page, api.Dataset, sel, api.PipelineOptions()...)
	api.observe("page_"+string(page), start, err)
	if err != nil {
		api.pipelineErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(view))
}

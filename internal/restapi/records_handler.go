package restapi

import (
	"net/http"
	"time"

	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/pipeline"
	"edudash.insights.org/internal/utils"
)

func (api *RestAPI) recordsHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := utils.FieldErrors{}
	sel := utils.ParseSelection(r.URL.Query(), fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	start := time.Now()
	records := pipeline.Filter(api.Dataset.Records(), sel)
	api.observe("filter", start, nil)

	api.sendResponse(w, r, models.NewListResponse(records, false))
}

package restapi

import (
	"net/http"
	"time"

	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/pipeline"
	"edudash.insights.org/internal/utils"
)

// kpisHandler computes the headline figures over the selected records. A
// selection matching nothing yields a null entry, not an error.
func (api *RestAPI) kpisHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := utils.FieldErrors{}
	sel := utils.ParseSelection(r.URL.Query(), fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	records := pipeline.Filter(api.Dataset.Records(), sel)

	start := time.Now()
	kpis, err := pipeline.ComputeKPIs(records, api.PipelineOptions()...)
	api.observe("kpis", start, err)
	if err != nil {
		api.pipelineErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(kpis))
}

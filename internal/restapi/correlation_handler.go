package restapi

import (
	"net/http"
	"time"

	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/pipeline"
	"edudash.insights.org/internal/utils"
)

func (api *RestAPI) correlationHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fieldErrors := utils.FieldErrors{}

	columns := utils.ParseColumnList(query, "columns", dataset.Numeric, pipeline.DefaultHeatmapColumns, fieldErrors)
	sel := utils.ParseSelection(query, fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	records := pipeline.Filter(api.Dataset.Records(), sel)

	start := time.Now()
	matrix, err := pipeline.CorrelationMatrix(records, columns, api.PipelineOptions()...)
	api.observe("correlation", start, err)
	if err != nil {
		api.pipelineErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(matrix))
}

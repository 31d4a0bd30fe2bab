package restapi

import (
	"fmt"
	"net/http"
	"time"

	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/pipeline"
	"edudash.insights.org/internal/utils"
)

func (api *RestAPI) optionsHandler(w http.ResponseWriter, r *http.Request) {
	raw := utils.ExtractParam(r, "column")

	if err := utils.ValidateID(raw); err != nil {
		api.validationErrorResponse(w, r, utils.FieldErrors{"column": {err.Error()}})
		return
	}

	column, err := dataset.LookupColumn(raw)
	if err != nil {
		api.validationErrorResponse(w, r, utils.FieldErrors{"column": {fmt.Sprintf("Unknown column %q.", raw)}})
		return
	}

	start := time.Now()
	options, err := pipeline.DistinctOptions(api.Dataset.Records(), column)
	api.observe("distinct_options", start, err)
	if err != nil {
		api.pipelineErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(options, false))
}

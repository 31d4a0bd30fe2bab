package restapi

import (
	"net/http"
	"time"

	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/pipeline"
	"edudash.insights.org/internal/utils"
)

// categoryCountsHandler tallies a categorical column, the GDP category by
// default, within one continent.
func (api *RestAPI) categoryCountsHandler(w http.ResponseWriter, r *http.Request) {
	raw := utils.ExtractParam(r, "continent")
	fieldErrors := utils.FieldErrors{}

	if err := utils.ValidateFilterValue(raw); err != nil {
		fieldErrors.Add("continent", err.Error())
	}
	continent := utils.SanitizeInput(raw)

	column := dataset.GDPCategory
	if raw := r.URL.Query().Get("column"); raw != "" {
		column, _ = utils.ParseColumn(raw, "column", dataset.Categorical, fieldErrors)
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	subset := pipeline.Filter(api.Dataset.Records(), pipeline.Selection{Continent: continent})

	start := time.Now()
	counts, err := pipeline.CategoryCounts(subset, column)
	api.observe("category_counts", start, err)
	if err != nil {
		api.pipelineErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(counts, false))
}

package restapi

import (
	"errors"
	"net/http"
	"time"

	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/pipeline"
	"edudash.insights.org/internal/utils"
)

var defaultMeanColumns = []dataset.Column{dataset.LiteracyRate, dataset.UnemploymentRate}

func (api *RestAPI) groupedMeanHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fieldErrors := utils.FieldErrors{}

	groupBy := dataset.Continent
	if raw := query.Get("groupBy"); raw != "" {
		groupBy, _ = utils.ParseColumn(raw, "groupBy", dataset.Categorical, fieldErrors)
	}
	values := utils.ParseColumnList(query, "values", dataset.Numeric, defaultMeanColumns, fieldErrors)
	sel := utils.ParseSelection(query, fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	records := pipeline.Filter(api.Dataset.Records(), sel)

	start := time.Now()
	groups, err := pipeline.GroupedMean(records, groupBy, values, api.PipelineOptions()...)
	api.observe("grouped_mean", start, err)
	if errors.Is(err, pipeline.ErrEmptyInput) {
		groups, err = []pipeline.GroupMean{}, nil
	}
	if err != nil {
		api.pipelineErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(groups, false))
}

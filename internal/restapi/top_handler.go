package restapi

import (
	"net/http"
	"time"

	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/pipeline"
	"edudash.insights.org/internal/utils"
)

const (
	defaultTopN = 10
	maxTopN     = 250
)

// topHandler returns the n records with the largest values of a numeric
// column. limitExceeded tells whether more records had a value.
func (api *RestAPI) topHandler(w http.ResponseWriter, r *http.Request) {
	raw := utils.ExtractParam(r, "column")
	fieldErrors := utils.FieldErrors{}

	if err := utils.ValidateID(raw); err != nil {
		fieldErrors.Add("column", err.Error())
	}
	column, _ := utils.ParseColumn(raw, "column", dataset.Numeric, fieldErrors)

	n := utils.ParseIntParam(r.URL.Query(), "n", defaultTopN, fieldErrors)
	if len(fieldErrors["n"]) == 0 {
		if err := utils.ValidateLimit(n, maxTopN); err != nil {
			fieldErrors.Add("n", err.Error())
		}
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	records := api.Dataset.Records()

	start := time.Now()
	top, err := pipeline.TopN(records, column, n, api.PipelineOptions()...)
	api.observe("top_n", start, err)
	if err != nil {
		api.pipelineErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(top, countValid(records, column) > len(top)))
}

func countValid(records []dataset.Record, column dataset.Column) int {
	count := 0
	for _, rec := range records {
		if v, err := rec.Value(column); err == nil && v.Valid {
			count++
		}
	}
	return count
}

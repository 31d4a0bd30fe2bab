package restapi

import (
	"errors"
	"net/http"
	"time"

	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/pipeline"
	"edudash.insights.org/internal/utils"
)

// emptySelectionText explains a null entry caused by a selection without records.
const emptySelectionText = "no records match the selection"

// observe records a pipeline call in the metrics.
func (api *RestAPI) observe(operation string, start time.Time, err error) {
	api.Metrics.ObservePipeline(operation, start, err)
}

// pipelineErrorResponse maps pipeline failures onto HTTP responses. Empty
// input is not a failure: the caller gets a 200 with a null entry.
func (api *RestAPI) pipelineErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pipeline.ErrEmptyInput):
		api.sendResponse(w, r, models.NewEmptyEntryResponse(emptySelectionText))
	case errors.Is(err, pipeline.ErrMissingValue):
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Code:        http.StatusUnprocessableEntity,
			CurrentTime: models.ResponseCurrentTime(),
			Text:        err.Error(),
			Version:     models.ResponseVersion,
		})
	case errors.Is(err, pipeline.ErrMissingColumn), errors.Is(err, pipeline.ErrColumnKind):
		fieldErrors := utils.FieldErrors{}
		fieldErrors.Add("column", err.Error())
		api.validationErrorResponse(w, r, fieldErrors)
	default:
		api.serverErrorResponse(w, r, err)
	}
}

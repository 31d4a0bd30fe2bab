package restapi

import (
	"net/http"

	"edudash.insights.org/internal/models"
	"edudash.insights.org/internal/utils"
)

// countryHandler returns the record of one country, looked up by its exact name.
func (api *RestAPI) countryHandler(w http.ResponseWriter, r *http.Request) {
	raw := utils.ExtractParam(r, "country")

	if err := utils.ValidateFilterValue(raw); err != nil {
		api.validationErrorResponse(w, r, utils.FieldErrors{"country": {err.Error()}})
		return
	}
	country := utils.SanitizeInput(raw)

	record, ok := api.Dataset.FindCountry(country)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(record))
}

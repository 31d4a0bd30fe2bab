package restapi

import (
	"net/http"

	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/models"
)

func (api *RestAPI) statusHandler(w http.ResponseWriter, r *http.Request) {
	columns := make([]string, len(dataset.Columns))
	for i, c := range dataset.Columns {
		columns[i] = c.Slug()
	}

	status := models.NewDatasetStatus(
		api.Dataset.Source(),
		api.Dataset.Len(),
		api.Dataset.LoadedAt(),
		api.Config.Env.String(),
		columns,
	)

	api.sendResponse(w, r, models.NewEntryResponse(status))
}

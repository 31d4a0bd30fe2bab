package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"edudash.insights.org/internal/dashboard"
	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/logging"
	"edudash.insights.org/internal/pipeline"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

// dataTypes lists the dumps the debug page offers, in menu order.
var dataTypes = []string{"records", "options", "kpis", "grouped", "correlation", "home", "insights"}

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	dataStruct := debugData{
		Title:     title,
		Pre:       spew.Sdump(data),
		DataTypes: dataTypes,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render debug page", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")
	table := webUI.Dataset
	records := table.Records()
	opts := webUI.PipelineOptions()

	var data interface{}
	var title string
	var err error

	switch dataType {
	case "records":
		data = records
		title = "Dataset - Records"
	case "options":
		options := make(map[string][]string)
		for _, c := range []dataset.Column{dataset.Continent, dataset.Country, dataset.GDPCategory} {
			if options[c.Slug()], err = pipeline.DistinctOptions(records, c); err != nil {
				break
			}
		}
		data = options
		title = "Pipeline - Filter Options"
	case "kpis":
		data, err = pipeline.ComputeKPIs(records, opts...)
		title = "Pipeline - KPIs"
	case "grouped":
		data, err = pipeline.GroupedMean(records, dataset.Continent,
			[]dataset.Column{dataset.LiteracyRate, dataset.UnemploymentRate}, opts...)
		title = "Pipeline - Mean Literacy & Unemployment by Continent"
	case "correlation":
		data, err = pipeline.CorrelationMatrix(records, pipeline.DefaultHeatmapColumns, opts...)
		title = "Pipeline - Correlation Matrix"
	case "home":
		data, err = dashboard.Home(table, pipeline.Selection{}, opts...)
		title = "Dashboard - Home"
	case "insights":
		data, err = dashboard.Insights(table, opts...)
		title = "Dashboard - Insights"
	default:
		data = map[string]string{
			"error": "Please use one of the following: records, options, kpis, grouped, correlation, home, insights.",
		}
		title = "Choose a data type"
	}

	if err != nil {
		data = map[string]string{"error": err.Error()}
	}

	webUI.writeDebugData(w, r, title, data)
}

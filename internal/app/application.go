package app

import (
	"log/slog"

	"edudash.insights.org/internal/appconf"
	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/metrics"
	"edudash.insights.org/internal/pipeline"
)

// Application holds the dependencies shared by the HTTP handlers, the
// middleware and the CLI commands.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Dataset *dataset.Table
	Metrics *metrics.Collectors
}

// PipelineOptions translates the configured missing-value policy into
// pipeline options. An unknown policy falls back to skipping.
func (app *Application) PipelineOptions() []pipeline.Option {
	policy, err := pipeline.ParseMissingPolicy(app.Config.Missing)
	if err != nil && app.Logger != nil {
		app.Logger.Warn("unknown missing value policy, skipping missing values", "policy", app.Config.Missing)
	}
	return []pipeline.Option{pipeline.WithMissing(policy)}
}

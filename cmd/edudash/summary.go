package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"edudash.insights.org/internal/app"
	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/pipeline"
)

// Summary is the report printed by the summary command.
type Summary struct {
	Source       string               `json:"source" yaml:"source"`
	Records      int                  `json:"records" yaml:"records"`
	Selection    pipeline.Selection   `json:"selection" yaml:"selection"`
	KPIs         *pipeline.KPIs       `json:"kpis" yaml:"kpis"`
	GroupedMeans []pipeline.GroupMean `json:"groupedMeans" yaml:"groupedMeans"`
	Correlation  *pipeline.Matrix     `json:"correlation" yaml:"correlation"`
}

type summaryOptions struct {
	format string
	sel    pipeline.Selection
}

func newSummaryCmd(c *cli) *cobra.Command {
	opts := &summaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print KPIs, continent means and correlations of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.summary(cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", "json", "Output format (json|yaml)")
	flags.StringVar(&opts.sel.Continent, "continent", "", "Only include this continent")
	flags.StringVar(&opts.sel.Country, "country", "", "Only include this country")
	flags.StringVar(&opts.sel.GDPCategory, "gdp-category", "", "Only include this GDP per capita category")

	return cmd
}

func (c *cli) summary(out io.Writer, opts *summaryOptions) error {
	format := strings.ToLower(opts.format)
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q, want json or yaml", opts.format)
	}

	table, err := dataset.Load(dataset.Config{Path: c.config.DatasetPath, Verbose: c.config.Verbose}, c.logger)
	if err != nil {
		return err
	}

	application := &app.Application{Config: c.config, Logger: c.logger, Dataset: table}
	summary, err := buildSummary(table, opts.sel, application.PipelineOptions()...)
	if err != nil {
		return err
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// buildSummary aggregates the selected records. A selection matching nothing
// produces empty sections rather than an error.
func buildSummary(table *dataset.Table, sel pipeline.Selection, opts ...pipeline.Option) (Summary, error) {
	records := pipeline.Filter(table.Records(), sel)
	summary := Summary{
		Source:       table.Source(),
		Records:      len(records),
		Selection:    sel,
		GroupedMeans: []pipeline.GroupMean{},
	}

	kpis, err := pipeline.ComputeKPIs(records, opts...)
	switch {
	case err == nil:
		summary.KPIs = &kpis
	case !errors.Is(err, pipeline.ErrEmptyInput):
		return Summary{}, err
	}

	means, err := pipeline.GroupedMean(records, dataset.Continent,
		[]dataset.Column{dataset.LiteracyRate, dataset.UnemploymentRate, dataset.GDPPerCapita}, opts...)
	switch {
	case err == nil:
		summary.GroupedMeans = means
	case !errors.Is(err, pipeline.ErrEmptyInput):
		return Summary{}, err
	}

	matrix, err := pipeline.CorrelationMatrix(records, pipeline.DefaultHeatmapColumns, opts...)
	switch {
	case err == nil:
		summary.Correlation = &matrix
	case !errors.Is(err, pipeline.ErrEmptyInput):
		return Summary{}, err
	}

	return summary, nil
}

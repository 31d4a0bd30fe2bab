// Package dashboard composes pipeline results into the tables each chart of
// the home and insights pages consumes.
package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/pipeline"
)

// Page names a dashboard page.
type Page string

const (
	PageHome     Page = "home"
	PageInsights Page = "insights"
)

// Pages lists the pages in sidebar order.
var Pages = []Page{PageHome, PageInsights}

var ErrUnknownPage = errors.New("unknown page")

// TopCount is the number of bars on the insights top-N charts.
const TopCount = 10

// ParsePage resolves a page name case-insensitively.
func ParsePage(name string) (Page, error) {
	p := Page(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Pages {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, name)
}

// Build returns the view for page. The selection only affects the home page.
func Build(page Page, table *dataset.Table, sel pipeline.Selection, opts ...pipeline.Option) (any, error) {
	switch page {
	case PageHome:
		return Home(table, sel, opts...)
	case PageInsights:
		return Insights(table, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, string(page))
	}
}

// Home builds the home page. KPIs, donuts, means and the heatmap describe the
// whole dataset; only the scatter follows the selection.
func Home(table *dataset.Table, sel pipeline.Selection, opts ...pipeline.Option) (HomeView, error) {
	records := table.Records()
	view := HomeView{Selection: sel}

	kpis, err := pipeline.ComputeKPIs(records, opts...)
	switch {
	case err == nil:
		view.KPIs = &kpis
	case !errors.Is(err, pipeline.ErrEmptyInput):
		return HomeView{}, fmt.Errorf("home kpis: %w", err)
	}

	if view.Options, err = filterOptions(records); err != nil {
		return HomeView{}, fmt.Errorf("home options: %w", err)
	}

	filtered := pipeline.Filter(records, sel)
	view.Scatter = scatter("GDP vs Literacy Rate by Country", filtered,
		dataset.LiteracyRate, dataset.GDP, dataset.GDP)

	if view.Donuts, err = donuts(records); err != nil {
		return HomeView{}, fmt.Errorf("home donuts: %w", err)
	}

	view.Means = GroupedBar{
		Title:   "Mean Literacy & Unemployment Rate by Continent",
		GroupBy: dataset.Continent,
		Series:  []dataset.Column{dataset.LiteracyRate, dataset.UnemploymentRate},
		Groups:  []pipeline.GroupMean{},
	}
	groups, err := pipeline.GroupedMean(records, view.Means.GroupBy, view.Means.Series, opts...)
	switch {
	case err == nil:
		view.Means.Groups = groups
	case !errors.Is(err, pipeline.ErrEmptyInput):
		return HomeView{}, fmt.Errorf("home means: %w", err)
	}

	view.Heatmap = Heatmap{
		Title:  "Correlation Heatmap",
		Matrix: pipeline.Matrix{Columns: pipeline.DefaultHeatmapColumns, Values: [][]dataset.Number{}},
	}
	matrix, err := pipeline.CorrelationMatrix(records, pipeline.DefaultHeatmapColumns, opts...)
	switch {
	case err == nil:
		view.Heatmap.Matrix = matrix
	case !errors.Is(err, pipeline.ErrEmptyInput):
		return HomeView{}, fmt.Errorf("home heatmap: %w", err)
	}

	return view, nil
}

// Insights builds the insights page over the whole dataset.
func Insights(table *dataset.Table, opts ...pipeline.Option) (InsightsView, error) {
	records := table.Records()
	var view InsightsView
	var err error

	if view.TopGDP, err = topBar("Top 10 Countries by GDP (Current USD)", records, dataset.GDP, opts...); err != nil {
		return InsightsView{}, fmt.Errorf("insights top gdp: %w", err)
	}
	if view.TopPhysicianDensity, err = topBar("Top 10 Countries by Physician Density", records, dataset.PhysicianDensity, opts...); err != nil {
		return InsightsView{}, fmt.Errorf("insights top physician density: %w", err)
	}

	view.PhysicianVsUnemployment = scatter("Physician Density vs Unemployment Rate", records,
		dataset.PhysicianDensity, dataset.UnemploymentRate, dataset.PhysicianDensity)

	sorted, err := pipeline.SortDescending(pipeline.FullLiteracy(records), dataset.GDP, opts...)
	if err != nil {
		return InsightsView{}, fmt.Errorf("insights full literacy: %w", err)
	}
	view.FullLiteracyGDP = Bar{
		Title:  "GDP of Countries with 100% Literacy Rate",
		Column: dataset.GDP,
		Items:  barItems(sorted, dataset.GDP),
	}

	return view, nil
}

func filterOptions(records []dataset.Record) (FilterOptions, error) {
	var opts FilterOptions
	var err error
	if opts.Continents, err = pipeline.DistinctOptions(records, dataset.Continent); err != nil {
		return FilterOptions{}, err
	}
	if opts.Countries, err = pipeline.DistinctOptions(records, dataset.Country); err != nil {
		return FilterOptions{}, err
	}
	if opts.GDPCategories, err = pipeline.DistinctOptions(records, dataset.GDPCategory); err != nil {
		return FilterOptions{}, err
	}
	return opts, nil
}

// scatter drops records missing either axis; a missing size is kept as null.
func scatter(title string, records []dataset.Record, x, y, size dataset.Column) Scatter {
	s := Scatter{Title: title, X: x, Y: y, Size: size, Points: make([]ScatterPoint, 0, len(records))}
	for _, rec := range records {
		xv, _ := rec.Value(x)
		yv, _ := rec.Value(y)
		if !xv.Valid || !yv.Valid {
			continue
		}
		sv, _ := rec.Value(size)
		s.Points = append(s.Points, ScatterPoint{
			Country:   rec.Country,
			Continent: rec.Continent,
			X:         xv,
			Y:         yv,
			Size:      sv,
		})
	}
	return s
}

func donuts(records []dataset.Record) ([]Donut, error) {
	continents, err := pipeline.UniqueValues(records, dataset.Continent)
	if err != nil {
		return nil, err
	}

	out := make([]Donut, 0, len(continents))
	for _, continent := range continents {
		subset := pipeline.Filter(records, pipeline.Selection{Continent: continent})
		counts, err := pipeline.CategoryCounts(subset, dataset.GDPCategory)
		if err != nil {
			return nil, err
		}
		out = append(out, Donut{Continent: continent, Slices: counts})
	}
	return out, nil
}

func topBar(title string, records []dataset.Record, column dataset.Column, opts ...pipeline.Option) (Bar, error) {
	top, err := pipeline.TopN(records, column, TopCount, opts...)
	if err != nil {
		return Bar{}, err
	}
	return Bar{Title: title, Column: column, Items: barItems(top, column)}, nil
}

func barItems(records []dataset.Record, column dataset.Column) []BarItem {
	items := make([]BarItem, len(records))
	for i, rec := range records {
		v, _ := rec.Value(column)
		items[i] = BarItem{Country: rec.Country, Label: rec.GDPCategory, Value: v}
	}
	return items
}

package dashboard

import (
	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/pipeline"
)

// FilterOptions are the choices offered by the three sidebar selects.
type FilterOptions struct {
	Continents    []string `json:"continents" yaml:"continents"`
	Countries     []string `json:"countries" yaml:"countries"`
	GDPCategories []string `json:"gdpCategories" yaml:"gdpCategories"`
}

// ScatterPoint is one country on a scatter chart, colored by continent.
type ScatterPoint struct {
	Country   string         `json:"country" yaml:"country"`
	Continent string         `json:"continent" yaml:"continent"`
	X         dataset.Number `json:"x" yaml:"x"`
	Y         dataset.Number `json:"y" yaml:"y"`
	Size      dataset.Number `json:"size" yaml:"size"`
}

type Scatter struct {
	Title  string         `json:"title" yaml:"title"`
	X      dataset.Column `json:"x" yaml:"x"`
	Y      dataset.Column `json:"y" yaml:"y"`
	Size   dataset.Column `json:"size" yaml:"size"`
	Points []ScatterPoint `json:"points" yaml:"points"`
}

// Donut is the GDP category split of one continent.
type Donut struct {
	Continent string                   `json:"continent" yaml:"continent"`
	Slices    []pipeline.CategoryCount `json:"slices" yaml:"slices"`
}

// GroupedBar holds one bar per series for every group.
type GroupedBar struct {
	Title   string               `json:"title" yaml:"title"`
	GroupBy dataset.Column       `json:"groupBy" yaml:"groupBy"`
	Series  []dataset.Column     `json:"series" yaml:"series"`
	Groups  []pipeline.GroupMean `json:"groups" yaml:"groups"`
}

type Heatmap struct {
	Title  string          `json:"title" yaml:"title"`
	Matrix pipeline.Matrix `json:"matrix" yaml:"matrix"`
}

// BarItem is one country bar. Label carries the GDP category text shown
// above the bar.
type BarItem struct {
	Country string         `json:"country" yaml:"country"`
	Label   string         `json:"label,omitempty" yaml:"label,omitempty"`
	Value   dataset.Number `json:"value" yaml:"value"`
}

type Bar struct {
	Title  string         `json:"title" yaml:"title"`
	Column dataset.Column `json:"column" yaml:"column"`
	Items  []BarItem      `json:"items" yaml:"items"`
}

// HomeView is everything the home page renders. KPIs is nil when the
// dataset cannot produce them.
type HomeView struct {
	Selection pipeline.Selection `json:"selection" yaml:"selection"`
	KPIs      *pipeline.KPIs     `json:"kpis" yaml:"kpis"`
	Options   FilterOptions      `json:"options" yaml:"options"`
	Scatter   Scatter            `json:"scatter" yaml:"scatter"`
	Donuts    []Donut            `json:"donuts" yaml:"donuts"`
	Means     GroupedBar         `json:"means" yaml:"means"`
	Heatmap   Heatmap            `json:"heatmap" yaml:"heatmap"`
}

// InsightsView is everything the insights page renders.
type InsightsView struct {
	TopGDP                  Bar     `json:"topGdp" yaml:"topGdp"`
	TopPhysicianDensity     Bar     `json:"topPhysicianDensity" yaml:"topPhysicianDensity"`
	PhysicianVsUnemployment Scatter `json:"physicianVsUnemployment" yaml:"physicianVsUnemployment"`
	FullLiteracyGDP         Bar     `json:"fullLiteracyGdp" yaml:"fullLiteracyGdp"`
}

package pipeline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"edudash.insights.org/internal/dataset"
)

// DefaultHeatmapColumns are the indicators shown on the correlation heatmap.
var DefaultHeatmapColumns = []dataset.Column{
	dataset.LiteracyRate,
	dataset.PhysicianDensity,
	dataset.GDP,
	dataset.GDPGrowth,
	dataset.GDPPerCapita,
	dataset.UnemploymentRate,
}

// Matrix is a square, symmetric correlation matrix over Columns.
type Matrix struct {
	Columns []dataset.Column   `json:"columns" yaml:"columns"`
	Values  [][]dataset.Number `json:"values" yaml:"values"`
}

// At returns the coefficient at row i, column j.
func (m Matrix) At(i, j int) dataset.Number {
	return m.Values[i][j]
}

// Lookup returns the coefficient for a pair of columns.
func (m Matrix) Lookup(a, b dataset.Column) (dataset.Number, bool) {
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a && i < 0 {
			i = k
		}
		if c == b && j < 0 {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return dataset.Number{}, false
	}
	return m.Values[i][j], true
}

// CorrelationMatrix computes Pearson coefficients between every pair of the
// given numeric columns. Each pair uses only the records where both values
// are present. The diagonal is 1. A pair with fewer than two complete
// observations, or with a constant side, has no coefficient.
func CorrelationMatrix(records []dataset.Record, columns []dataset.Column, opts ...Option) (Matrix, error) {
	if len(columns) == 0 {
		return Matrix{}, fmt.Errorf("%w: no columns requested", ErrMissingColumn)
	}
	for _, c := range columns {
		if err := dataset.RequireKind(c, dataset.Numeric); err != nil {
			return Matrix{}, err
		}
	}
	if len(records) == 0 {
		return Matrix{}, fmt.Errorf("%w: no records to correlate", ErrEmptyInput)
	}

	cfg := applyOptions(opts)

	n := len(columns)
	cells := make([][]dataset.Number, n)
	for i := range cells {
		cells[i] = make([]dataset.Number, n)
		cells[i][i] = dataset.Num(1)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			x, y, err := completePairs(records, columns[i], columns[j], cfg)
			if err != nil {
				return Matrix{}, err
			}
			r := pearson(x, y)
			cells[i][j] = r
			cells[j][i] = r
		}
	}

	return Matrix{Columns: append([]dataset.Column(nil), columns...), Values: cells}, nil
}

func completePairs(records []dataset.Record, a, b dataset.Column, cfg *config) ([]float64, []float64, error) {
	x := make([]float64, 0, len(records))
	y := make([]float64, 0, len(records))
	for _, rec := range records {
		va, okA, err := cfg.numeric(rec, a)
		if err != nil {
			return nil, nil, err
		}
		vb, okB, err := cfg.numeric(rec, b)
		if err != nil {
			return nil, nil, err
		}
		if okA && okB {
			x = append(x, va)
			y = append(y, vb)
		}
	}
	return x, y, nil
}

func pearson(x, y []float64) dataset.Number {
	if len(x) < 2 {
		return dataset.Number{}
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return dataset.Number{}
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return dataset.Number{}
	}
	// Rounding can push a perfect correlation a hair past ±1.
	return dataset.Num(math.Max(-1, math.Min(1, r)))
}

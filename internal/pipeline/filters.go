package pipeline

import (
	"fmt"
	"sort"
	"strconv"

	"edudash.insights.org/internal/dataset"
)

// Selection holds the three sidebar filters. An empty field is an absent
// predicate.
type Selection struct {
	Continent   string `json:"continent,omitempty" yaml:"continent,omitempty"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`
	GDPCategory string `json:"gdpCategory,omitempty" yaml:"gdpCategory,omitempty"`
}

// IsEmpty returns true if no filter is set.
func (s Selection) IsEmpty() bool {
	return s.Continent == "" && s.Country == "" && s.GDPCategory == ""
}

func (s Selection) matches(rec dataset.Record) bool {
	if s.Continent != "" && rec.Continent != s.Continent {
		return false
	}
	if s.Country != "" && rec.Country != s.Country {
		return false
	}
	if s.GDPCategory != "" && rec.GDPCategory != s.GDPCategory {
		return false
	}
	return true
}

// Filter returns the records matching every set predicate, in input order.
// An empty selection returns records unchanged. A value that occurs nowhere
// in the data simply matches nothing.
func Filter(records []dataset.Record, sel Selection) []dataset.Record {
	if sel.IsEmpty() {
		return records
	}

	out := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if sel.matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// FullLiteracy returns the records whose literacy rate is exactly 100.
func FullLiteracy(records []dataset.Record) []dataset.Record {
	out := make([]dataset.Record, 0)
	for _, rec := range records {
		if isFullLiteracy(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func isFullLiteracy(rec dataset.Record) bool {
	return rec.LiteracyRate.Valid && rec.LiteracyRate.Value == 100
}

// DistinctOptions returns the sorted, deduplicated, non-missing values of a
// column. Categorical values sort lexicographically; numeric values sort
// numerically and are rendered in their shortest exact form.
func DistinctOptions(records []dataset.Record, column dataset.Column) ([]string, error) {
	if !column.Known() {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, string(column))
	}

	if column.Kind() == dataset.Numeric {
		return distinctNumbers(records, column)
	}

	seen := make(map[string]bool)
	options := make([]string, 0)
	for _, rec := range records {
		v, err := rec.Category(column)
		if err != nil {
			return nil, err
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		options = append(options, v)
	}
	sort.Strings(options)
	return options, nil
}

func distinctNumbers(records []dataset.Record, column dataset.Column) ([]string, error) {
	seen := make(map[float64]bool)
	values := make([]float64, 0)
	for _, rec := range records {
		n, err := rec.Value(column)
		if err != nil {
			return nil, err
		}
		if !n.Valid || seen[n.Value] {
			continue
		}
		seen[n.Value] = true
		values = append(values, n.Value)
	}
	sort.Float64s(values)

	options := make([]string, len(values))
	for i, v := range values {
		options[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return options, nil
}

// UniqueValues returns the distinct non-missing values of a categorical
// column in order of first appearance.
func UniqueValues(records []dataset.Record, column dataset.Column) ([]string, error) {
	if err := dataset.RequireKind(column, dataset.Categorical); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var result []string
	for _, rec := range records {
		v, _ := rec.Category(column)
		if v != "" && !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result, nil
}

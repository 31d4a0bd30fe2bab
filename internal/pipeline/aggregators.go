package pipeline

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"edudash.insights.org/internal/dataset"
)

// ============================================================================
// KPIs
// ============================================================================

// KPIs are the four headline figures of the home page.
type KPIs struct {
	Count                     int    `json:"count" yaml:"count"`
	TopGDPPerCapitaContinent  string `json:"topGdpPerCapitaContinent" yaml:"topGdpPerCapitaContinent"`
	LowestUnemploymentCountry string `json:"lowestUnemploymentCountry" yaml:"lowestUnemploymentCountry"`
	FullLiteracyCount         int    `json:"fullLiteracyCount" yaml:"fullLiteracyCount"`
}

// ComputeKPIs derives the headline figures.
//
// The top continent is the one with the highest mean GDP per capita; equal
// means go to the lexicographically smallest continent. The lowest
// unemployment country is the first record, in input order, holding the
// minimum. Empty input, or input in which no continent or no unemployment
// value exists, yields ErrEmptyInput.
func ComputeKPIs(records []dataset.Record, opts ...Option) (KPIs, error) {
	if len(records) == 0 {
		return KPIs{}, fmt.Errorf("%w: no records for KPIs", ErrEmptyInput)
	}

	top, err := topGroup(records, dataset.Continent, dataset.GDPPerCapita, opts...)
	if err != nil {
		return KPIs{}, err
	}

	lowest, err := argminCountry(records, dataset.UnemploymentRate, opts...)
	if err != nil {
		return KPIs{}, err
	}

	full := 0
	for _, rec := range records {
		if isFullLiteracy(rec) {
			full++
		}
	}

	return KPIs{
		Count:                     len(records),
		TopGDPPerCapitaContinent:  top,
		LowestUnemploymentCountry: lowest,
		FullLiteracyCount:         full,
	}, nil
}

func topGroup(records []dataset.Record, groupColumn, valueColumn dataset.Column, opts ...Option) (string, error) {
	groups, err := GroupedMean(records, groupColumn, []dataset.Column{valueColumn}, opts...)
	if err != nil {
		return "", err
	}
	if len(groups) == 0 || !groups[0].Means[0].Valid {
		return "", fmt.Errorf("%w: no %s group has a %s value", ErrEmptyInput, groupColumn, valueColumn)
	}
	return groups[0].Group, nil
}

func argminCountry(records []dataset.Record, column dataset.Column, opts ...Option) (string, error) {
	cfg := applyOptions(opts)

	found := false
	var best float64
	var country string
	for _, rec := range records {
		v, ok, err := cfg.numeric(rec, column)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		if !found || v < best {
			best = v
			country = rec.Country
			found = true
		}
	}
	if !found {
		return "", fmt.Errorf("%w: no record has a %s value", ErrEmptyInput, column)
	}
	return country, nil
}

// ============================================================================
// GROUPED MEANS
// ============================================================================

// GroupMean is one group of a GroupedMean result. Means is aligned with the
// requested value columns; a mean over no values is invalid.
type GroupMean struct {
	Group string           `json:"group" yaml:"group"`
	Count int              `json:"count" yaml:"count"`
	Means []dataset.Number `json:"means" yaml:"means"`
}

// GroupedMean groups records by a categorical column and averages each value
// column over the group's non-missing values. Records whose group key is
// missing are dropped. Groups are ordered by the first value column,
// descending, with invalid means last and ties broken by ascending group key.
func GroupedMean(records []dataset.Record, groupColumn dataset.Column, valueColumns []dataset.Column, opts ...Option) ([]GroupMean, error) {
	if err := dataset.RequireKind(groupColumn, dataset.Categorical); err != nil {
		return nil, err
	}
	if len(valueColumns) == 0 {
		return nil, fmt.Errorf("%w: no value columns requested", ErrMissingColumn)
	}
	for _, c := range valueColumns {
		if err := dataset.RequireKind(c, dataset.Numeric); err != nil {
			return nil, err
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records to group by %s", ErrEmptyInput, groupColumn)
	}

	cfg := applyOptions(opts)

	type bucket struct {
		count  int
		values [][]float64
	}
	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for _, rec := range records {
		key, _ := rec.Category(groupColumn)
		if key == "" {
			continue
		}
		b, exists := buckets[key]
		if !exists {
			b = &bucket{values: make([][]float64, len(valueColumns))}
			buckets[key] = b
			order = append(order, key)
		}
		b.count++
		for i, c := range valueColumns {
			v, ok, err := cfg.numeric(rec, c)
			if err != nil {
				return nil, err
			}
			if ok {
				b.values[i] = append(b.values[i], v)
			}
		}
	}

	groups := make([]GroupMean, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		means := make([]dataset.Number, len(valueColumns))
		for i, values := range b.values {
			if len(values) > 0 {
				means[i] = dataset.Num(stat.Mean(values, nil))
			}
		}
		groups = append(groups, GroupMean{Group: key, Count: b.count, Means: means})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Means[0], groups[j].Means[0]
		if a.Valid != b.Valid {
			return a.Valid
		}
		if a.Valid && a.Value != b.Value {
			return a.Value > b.Value
		}
		return groups[i].Group < groups[j].Group
	})

	return groups, nil
}

// ============================================================================
// SORTING & TOP-N
// ============================================================================

// SortDescending returns the records ordered by column, largest first. Equal
// values keep their input order. Records missing the column are dropped under
// MissingSkip.
func SortDescending(records []dataset.Record, column dataset.Column, opts ...Option) ([]dataset.Record, error) {
	if err := dataset.RequireKind(column, dataset.Numeric); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)

	type keyed struct {
		rec   dataset.Record
		value float64
	}
	rows := make([]keyed, 0, len(records))
	for _, rec := range records {
		v, ok, err := cfg.numeric(rec, column)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, keyed{rec: rec, value: v})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].value > rows[j].value })

	out := make([]dataset.Record, len(rows))
	for i, row := range rows {
		out[i] = row.rec
	}
	return out, nil
}

// TopN returns at most n records with the largest values of column, ordered
// as SortDescending orders them. n <= 0 returns no records.
func TopN(records []dataset.Record, column dataset.Column, n int, opts ...Option) ([]dataset.Record, error) {
	sorted, err := SortDescending(records, column, opts...)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []dataset.Record{}, nil
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted, nil
}

// ============================================================================
// CATEGORY COUNTS
// ============================================================================

// CategoryCount is one slice of a frequency table.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// CategoryCounts tallies a categorical column. Callers restrict records to a
// single subgroup first (e.g. one continent). Missing categories are not
// counted. Rows are ordered by count, descending, then by category.
func CategoryCounts(records []dataset.Record, categoryColumn dataset.Column) ([]CategoryCount, error) {
	if err := dataset.RequireKind(categoryColumn, dataset.Categorical); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, rec := range records {
		v, _ := rec.Category(categoryColumn)
		if v != "" {
			counts[v]++
		}
	}

	result := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}

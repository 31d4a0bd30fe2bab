package dataset

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"edudash.insights.org/internal/logging"
)

// Table is the loaded dataset. It is never modified after construction, so a
// single Table can be shared by every request.
type Table struct {
	source    string
	loadedAt  time.Time
	records   []Record
	byCountry map[string]int
}

// NewTable validates records and wraps a private copy of them.
func NewTable(source string, records []Record) (*Table, error) {
	byCountry := make(map[string]int, len(records))
	for i, rec := range records {
		if rec.Country == "" {
			return nil, fmt.Errorf("%w: row %d has no country", ErrInvalidRecord, i+1)
		}
		if prev, exists := byCountry[rec.Country]; exists {
			return nil, fmt.Errorf("%w: country %q appears in rows %d and %d", ErrInvalidRecord, rec.Country, prev+1, i+1)
		}
		byCountry[rec.Country] = i
	}

	return &Table{
		source:    source,
		loadedAt:  time.Now(),
		records:   slices.Clone(records),
		byCountry: byCountry,
	}, nil
}

// Records returns a copy of every record in file order.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

func (t *Table) Len() int {
	return len(t.records)
}

func (t *Table) Source() string {
	return t.source
}

func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}

// FindCountry looks a record up by its key.
func (t *Table) FindCountry(country string) (Record, bool) {
	i, ok := t.byCountry[country]
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}

// LogStatistics writes a one-line summary of the table.
func (t *Table) LogStatistics(logger *slog.Logger) {
	var continents, categories int
	for _, rec := range t.records {
		if rec.Continent != "" {
			continents++
		}
		if rec.GDPCategory != "" {
			categories++
		}
	}

	logging.LogOperation(logger, "dataset_statistics",
		slog.String("source", t.source),
		slog.Time("loaded_at", t.loadedAt),
		slog.Int("records", len(t.records)),
		slog.Int("with_continent", continents),
		slog.Int("with_gdp_category", categories))
}

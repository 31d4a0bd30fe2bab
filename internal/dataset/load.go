package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"edudash.insights.org/internal/logging"
)

// Config describes where the indicators file lives.
type Config struct {
	Path    string
	Verbose bool
}

// Cells matching one of these (after trimming) are treated as missing.
var naValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "<nil>"}

// Load reads the indicators file once and returns the immutable table.
func Load(config Config, logger *slog.Logger) (table *Table, err error) {
	start := time.Now()

	file, err := os.Open(config.Path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset file: %w", err)
	}
	defer logging.HandleDeferredError(&err, file.Close, logger, "close_dataset_file")

	table, err = ReadCSV(file, config.Path)
	if err != nil {
		return nil, err
	}

	logging.LogOperation(logger, "dataset_loaded",
		slog.String("source", config.Path),
		slog.Int("records", table.Len()),
		slog.Duration("duration", time.Since(start)))

	if config.Verbose {
		table.LogStatistics(logger)
	}

	return table, nil
}

// utf8BOM is stripped from the start of the file; spreadsheet exports often carry it.
const utf8BOM = "\ufeff"

// ReadCSV parses CSV content with a header row. Every schema column must be
// present; extra columns are ignored. A file with a header and no rows gives
// an empty table. Cells are trimmed; a numeric cell that is neither an NA
// marker nor a number is an ErrInvalidRecord.
func ReadCSV(r io.Reader, source string) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset %s: %w", source, err)
	}
	content = bytes.TrimPrefix(content, []byte(utf8BOM))

	df := dataframe.ReadCSV(bytes.NewReader(content),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(columnTypes()),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		if headers, ok := headerOnly(content); ok {
			if err := checkHeaders(headers); err != nil {
				return nil, fmt.Errorf("dataset %s: %w", source, err)
			}
			return NewTable(source, nil)
		}
		return nil, fmt.Errorf("error parsing dataset %s: %w", source, df.Err)
	}

	if err := checkHeaders(df.Names()); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", source, err)
	}

	cols := make(map[Column]series.Series, len(Columns))
	for _, c := range Columns {
		cols[c] = df.Col(string(c))
	}

	records := make([]Record, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		var rec Record
		for _, c := range Columns {
			text := cellText(cols[c].Elem(i))
			if c.Kind() != Numeric {
				rec.set(c, text, Number{})
				continue
			}

			num, err := parseNumber(text)
			if err != nil {
				// Row numbers count data rows from 1, excluding the header.
				return nil, fmt.Errorf("dataset %s: %w: row %d column %q: %q",
					source, ErrInvalidRecord, i+1, string(c), text)
			}
			rec.set(c, "", num)
		}
		records = append(records, rec)
	}

	return NewTable(source, records)
}

// cellText returns the trimmed cell, or "" when it holds an NA marker.
func cellText(elem series.Element) string {
	if elem.IsNA() {
		return ""
	}
	text := strings.TrimSpace(elem.String())
	if slices.Contains(naValues, text) {
		return ""
	}
	return text
}

func parseNumber(text string) (Number, error) {
	if text == "" {
		return Number{}, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Number{}, err
	}
	return Num(v), nil
}

// headerOnly reports whether content holds a header row and nothing else.
func headerOnly(content []byte) ([]string, bool) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, false
	}
	if _, err := reader.Read(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return headers, true
}

// columnTypes reads every column as text so numeric cells can be trimmed
// and rejected explicitly instead of silently becoming NA.
func columnTypes() map[string]series.Type {
	types := make(map[string]series.Type, len(Columns))
	for _, c := range Columns {
		types[string(c)] = series.String
	}
	return types
}

func checkHeaders(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, c := range Columns {
		if !present[string(c)] {
			missing = append(missing, fmt.Sprintf("%q", string(c)))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/pipeline"
)

// FieldErrors collects validation messages per request field.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// ParseIntParam retrieves an int value from the provided URL query parameters.
// A missing key yields def. An invalid value yields def and a field error.
func ParseIntParam(params url.Values, key string, def int, fieldErrors FieldErrors) int {
	val := params.Get(key)
	if val == "" {
		return def
	}

	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		fieldErrors.Add(key, fmt.Sprintf("Invalid field value for field %q.", key))
		return def
	}
	return n
}

// ParseSelection reads the continent, country and gdpCategory filters.
// Values are sanitized; an unknown value is not an error, it just matches
// nothing.
func ParseSelection(params url.Values, fieldErrors FieldErrors) pipeline.Selection {
	read := func(key string) string {
		raw := params.Get(key)
		if err := ValidateFilterValue(raw); err != nil {
			fieldErrors.Add(key, err.Error())
			return ""
		}
		return SanitizeInput(raw)
	}

	return pipeline.Selection{
		Continent:   read("continent"),
		Country:     read("country"),
		GDPCategory: read("gdpCategory"),
	}
}

// ParseColumn resolves a column slug or header for field key and checks its kind.
func ParseColumn(raw, key string, kind dataset.Kind, fieldErrors FieldErrors) (dataset.Column, bool) {
	column, err := dataset.LookupColumn(raw)
	if err != nil {
		fieldErrors.Add(key, fmt.Sprintf("Unknown column %q.", raw))
		return "", false
	}
	if column.Kind() != kind {
		fieldErrors.Add(key, fmt.Sprintf("Column %q is not %s.", raw, kind))
		return "", false
	}
	return column, true
}

// ParseColumnList reads a comma separated list of columns of one kind. A
// missing parameter yields defaults.
func ParseColumnList(params url.Values, key string, kind dataset.Kind, defaults []dataset.Column, fieldErrors FieldErrors) []dataset.Column {
	raw := params.Get(key)
	if raw == "" {
		return defaults
	}
	raw, err := ValidateAndSanitizeQuery(raw)
	if err != nil {
		fieldErrors.Add(key, err.Error())
		return nil
	}

	var columns []dataset.Column
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if column, ok := ParseColumn(part, key, kind, fieldErrors); ok {
			columns = append(columns, column)
		}
	}
	if len(columns) == 0 && len(fieldErrors[key]) == 0 {
		fieldErrors.Add(key, fmt.Sprintf("Field %q needs at least one column.", key))
	}
	return columns
}

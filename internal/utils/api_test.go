package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/pipeline"
)

func TestParseIntParam(t *testing.T) {
	fieldErrors := FieldErrors{}
	params := url.Values{"n": {"5"}, "bad": {"five"}}

	assert.Equal(t, 5, ParseIntParam(params, "n", 10, fieldErrors))
	assert.Equal(t, 10, ParseIntParam(params, "missing", 10, fieldErrors))
	assert.Empty(t, fieldErrors)

	assert.Equal(t, 10, ParseIntParam(params, "bad", 10, fieldErrors))
	assert.Equal(t, []string{`Invalid field value for field "bad".`}, fieldErrors["bad"])
}

func TestParseSelection(t *testing.T) {
	t.Run("reads and trims filters", func(t *testing.T) {
		fieldErrors := FieldErrors{}
		params := url.Values{
			"continent":   {" Asia "},
			"country":     {"Vietnam"},
			"gdpCategory": {"Middle"},
		}

		sel := ParseSelection(params, fieldErrors)

		assert.Empty(t, fieldErrors)
		assert.Equal(t, pipeline.Selection{Continent: "Asia", Country: "Vietnam", GDPCategory: "Middle"}, sel)
	})

	t.Run("no filters is an empty selection", func(t *testing.T) {
		sel := ParseSelection(url.Values{}, FieldErrors{})
		assert.True(t, sel.IsEmpty())
	})

	t.Run("injection attempts are field errors", func(t *testing.T) {
		fieldErrors := FieldErrors{}
		sel := ParseSelection(url.Values{"country": {"x'; DROP TABLE --"}}, fieldErrors)

		assert.Empty(t, sel.Country)
		assert.Contains(t, fieldErrors, "country")
	})
}

func TestParseColumn(t *testing.T) {
	fieldErrors := FieldErrors{}

	column, ok := ParseColumn("gdp-per-capita", "column", dataset.Numeric, fieldErrors)
	assert.True(t, ok)
	assert.Equal(t, dataset.GDPPerCapita, column)

	_, ok = ParseColumn("continent", "column", dataset.Numeric, fieldErrors)
	assert.False(t, ok)

	_, ok = ParseColumn("population", "column", dataset.Numeric, fieldErrors)
	assert.False(t, ok)

	assert.Len(t, fieldErrors["column"], 2)
}

func TestParseColumnList(t *testing.T) {
	defaults := []dataset.Column{dataset.GDP}

	t.Run("missing parameter yields defaults", func(t *testing.T) {
		fieldErrors := FieldErrors{}
		assert.Equal(t, defaults, ParseColumnList(url.Values{}, "columns", dataset.Numeric, defaults, fieldErrors))
		assert.Empty(t, fieldErrors)
	})

	t.Run("comma separated slugs", func(t *testing.T) {
		fieldErrors := FieldErrors{}
		params := url.Values{"columns": {"literacy-rate, unemployment-rate"}}

		columns := ParseColumnList(params, "columns", dataset.Numeric, defaults, fieldErrors)

		assert.Empty(t, fieldErrors)
		assert.Equal(t, []dataset.Column{dataset.LiteracyRate, dataset.UnemploymentRate}, columns)
	})

	t.Run("bad entries are reported", func(t *testing.T) {
		fieldErrors := FieldErrors{}
		params := url.Values{"columns": {"gdp,country"}}

		ParseColumnList(params, "columns", dataset.Numeric, defaults, fieldErrors)

		assert.Len(t, fieldErrors["columns"], 1)
	})

	t.Run("only separators", func(t *testing.T) {
		fieldErrors := FieldErrors{}
		params := url.Values{"columns": {" , "}}

		assert.Empty(t, ParseColumnList(params, "columns", dataset.Numeric, defaults, fieldErrors))
		assert.Len(t, fieldErrors["columns"], 1)
	})
}

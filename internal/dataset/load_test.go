package dataset

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edudash.insights.org/internal/logging"
)

const header = "Country,Continent,Literacy Rate,Physician Density,GDP (Current USD),GDP per Capita (Current USD),GDP Growth (% Annual),Unemployment Rate (%),GDP per Capita Category\n"

func TestLoadFixture(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

	table, err := Load(Config{Path: filepath.Join("../../testdata", "countries.csv"), Verbose: true}, logger)
	require.NoError(t, err)

	assert.Equal(t, 14, table.Len())
	assert.Contains(t, buf.String(), `"msg":"dataset_loaded"`)
	assert.Contains(t, buf.String(), `"msg":"dataset_statistics"`)

	records := table.Records()
	assert.Equal(t, "Norway", records[0].Country)
	assert.Equal(t, "United States", records[len(records)-1].Country)

	norway, ok := table.FindCountry("Norway")
	require.True(t, ok)
	assert.Equal(t, "Europe", norway.Continent)
	assert.Equal(t, Num(100), norway.LiteracyRate)
	assert.Equal(t, Num(90000), norway.GDPPerCapita)
	assert.Equal(t, "High", norway.GDPCategory)

	finland, ok := table.FindCountry("Finland")
	require.True(t, ok)
	assert.InDelta(t, -0.5, finland.GDPGrowth.Value, 1e-9)
}

func TestLoadMissingValues(t *testing.T) {
	table, err := Load(Config{Path: filepath.Join("../../testdata", "countries.csv")}, nil)
	require.NoError(t, err)

	kosovo, ok := table.FindCountry("Kosovo")
	require.True(t, ok)
	assert.Empty(t, kosovo.Continent)
	assert.False(t, kosovo.PhysicianDensity.Valid)
	assert.False(t, kosovo.UnemploymentRate.Valid)
	assert.True(t, kosovo.GDP.Valid)

	greenland, ok := table.FindCountry("Greenland")
	require.True(t, ok)
	assert.Empty(t, greenland.GDPCategory)
	assert.False(t, greenland.GDPGrowth.Valid)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Config{Path: filepath.Join(t.TempDir(), "absent.csv")}, nil)
	assert.Error(t, err)
}

func TestReadCSVMissingColumn(t *testing.T) {
	content := "Country,Continent,Literacy Rate\nNorway,Europe,100\n"

	_, err := ReadCSV(strings.NewReader(content), "inline")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `"Physician Density"`)
	assert.Contains(t, err.Error(), `"GDP per Capita Category"`)
}

func TestReadCSVIgnoresExtraColumns(t *testing.T) {
	content := strings.TrimSuffix(header, "\n") + ",Notes\n" +
		"Norway,Europe,100,5.0,500000000000,90000,1.5,3.5,High,nordic\n"

	table, err := ReadCSV(strings.NewReader(content), "inline")
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestReadCSVRejectsDuplicateCountry(t *testing.T) {
	content := header +
		"Norway,Europe,100,5.0,500000000000,90000,1.5,3.5,High\n" +
		"Norway,Europe,99,5.0,500000000000,90000,1.5,3.5,High\n"

	_, err := ReadCSV(strings.NewReader(content), "inline")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestReadCSVTreatsNAMarkersAsMissing(t *testing.T) {
	content := header + "Chad,NA,27,N/A,12000000000,700,nan,1.9,\n"

	table, err := ReadCSV(strings.NewReader(content), "inline")
	require.NoError(t, err)

	chad, ok := table.FindCountry("Chad")
	require.True(t, ok)
	assert.Empty(t, chad.Continent)
	assert.Empty(t, chad.GDPCategory)
	assert.False(t, chad.PhysicianDensity.Valid)
	assert.False(t, chad.GDPGrowth.Valid)
	assert.Equal(t, Num(27), chad.LiteracyRate)
}

func TestReadCSVTrimsPaddedNumbers(t *testing.T) {
	content := header + "Norway,Europe, 95 ,5,1,2,3,4,High\n" +
		"Chad,Africa,27,\t NA ,12000000000,700,1.2,1.9,Low\n"

	table, err := ReadCSV(strings.NewReader(content), "inline")
	require.NoError(t, err)

	norway, ok := table.FindCountry("Norway")
	require.True(t, ok)
	assert.Equal(t, Num(95), norway.LiteracyRate)

	chad, ok := table.FindCountry("Chad")
	require.True(t, ok)
	assert.False(t, chad.PhysicianDensity.Valid)
}

func TestReadCSVRejectsMalformedNumber(t *testing.T) {
	content := header +
		"Norway,Europe,100,5,1,2,3,4,High\n" +
		"Chad,Africa,abc,0.2,12000000000,700,1.2,1.9,Low\n"

	_, err := ReadCSV(strings.NewReader(content), "inline")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), `row 2 column "Literacy Rate": "abc"`)
}

func TestReadCSVStripsByteOrderMark(t *testing.T) {
	content := "\ufeff" + header + "Norway,Europe,100,5,1,2,3,4,High\n"

	table, err := ReadCSV(strings.NewReader(content), "inline")
	require.NoError(t, err)

	_, ok := table.FindCountry("Norway")
	assert.True(t, ok)
}

func TestReadCSVHeaderOnlyGivesEmptyTable(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(header), "inline")
	require.NoError(t, err)
	assert.Zero(t, table.Len())
	assert.Empty(t, table.Records())

	_, err = ReadCSV(strings.NewReader("Country,Continent\n"), "inline")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestTableRecordsAreCopies(t *testing.T) {
	table, err := NewTable("inline", []Record{{Country: "Norway", Continent: "Europe"}})
	require.NoError(t, err)

	records := table.Records()
	records[0].Continent = "Asia"

	again := table.Records()
	assert.Equal(t, "Europe", again[0].Continent)
}

func TestNewTableRejectsBlankCountry(t *testing.T) {
	_, err := NewTable("inline", []Record{{Continent: "Europe"}})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestNumberJSON(t *testing.T) {
	b, err := json.Marshal(Record{Country: "Kosovo", GDP: Num(9.4e9)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"gdp":9400000000`)
	assert.Contains(t, string(b), `"literacyRate":null`)

	var n Number
	require.NoError(t, json.Unmarshal([]byte("null"), &n))
	assert.False(t, n.Valid)
	require.NoError(t, json.Unmarshal([]byte("2.5"), &n))
	assert.Equal(t, Num(2.5), n)
}

package webui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edudash.insights.org/internal/app"
	"edudash.insights.org/internal/appconf"
	"edudash.insights.org/internal/dataset"
)

func serveDebug(t *testing.T, missing, query string) *httptest.ResponseRecorder {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	table, err := dataset.Load(dataset.Config{Path: "../../testdata/countries.csv"}, logger)
	require.NoError(t, err)

	webUI := &WebUI{Application: &app.Application{
		Config:  appconf.Config{Env: appconf.Test, Missing: missing},
		Logger:  logger,
		Dataset: table,
	}}
	router := httprouter.New()
	webUI.SetWebUIRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/"+query, nil))
	return rec
}

func TestDebugIndexDumpsRecords(t *testing.T) {
	rec := serveDebug(t, "skip", "?dataType=records")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Dataset - Records")
	assert.Contains(t, body, "Uzbekistan")
	assert.Contains(t, body, "dataset.Record")
}

func TestDebugIndexDumpsKPIs(t *testing.T) {
	rec := serveDebug(t, "skip", "?dataType=kpis")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "North America")
}

func TestDebugIndexShowsPipelineErrors(t *testing.T) {
	rec := serveDebug(t, "fail", "?dataType=insights")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing value")
}

func TestDebugIndexWithoutDataType(t *testing.T) {
	rec := serveDebug(t, "skip", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Choose a data type")
	assert.Contains(t, body, `href="?dataType=correlation"`)
}

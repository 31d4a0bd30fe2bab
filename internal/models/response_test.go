package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	testCode := http.StatusCreated
	testData := map[string]string{"key": "value"}
	testText := "Resource Created"

	currentTimeBeforeCall := time.Now().UnixNano() / int64(time.Millisecond)
	response := NewResponse(testCode, testData, testText)
	currentTimeAfterCall := time.Now().UnixNano() / int64(time.Millisecond)

	assert.Equal(t, testCode, response.Code, "Response code should match input")
	assert.Equal(t, testData, response.Data, "Response data should match input")
	assert.Equal(t, testText, response.Text, "Response text should match input")
	assert.Equal(t, 2, response.Version, "Response version should be 2")
	assert.GreaterOrEqual(t, response.CurrentTime, currentTimeBeforeCall)
	assert.LessOrEqual(t, response.CurrentTime, currentTimeAfterCall)
}

func TestNewEntryResponse(t *testing.T) {
	entryData := map[string]int{"count": 14}

	response := NewEntryResponse(entryData)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, 2, response.Version)

	responseData, ok := response.Data.(map[string]interface{})
	require.True(t, ok, "Response data should be a map")
	assert.Equal(t, entryData, responseData["entry"])
}

func TestNewEmptyEntryResponse(t *testing.T) {
	response := NewEmptyEntryResponse("no records match the selection")

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "no records match the selection", response.Text)

	body, err := json.Marshal(response)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"data":{"entry":null}`)
}

func TestNewListResponse(t *testing.T) {
	itemList := []string{"Africa", "Asia"}

	response := NewListResponse(itemList, false)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, 2, response.Version)

	responseData, ok := response.Data.(map[string]interface{})
	require.True(t, ok, "Response data should be a map")
	assert.Equal(t, itemList, responseData["list"])
	assert.False(t, responseData["limitExceeded"].(bool), "limitExceeded should be false")

	truncated := NewListResponse(itemList, true)
	assert.True(t, truncated.Data.(map[string]interface{})["limitExceeded"].(bool))
}

func TestResponseModelJSON(t *testing.T) {
	response := ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: 1746324484528,
		Data:        map[string]string{"test": "data"},
		Text:        "Test Message",
		Version:     2,
	}

	jsonData, err := json.Marshal(response)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"code":200,"currentTime":1746324484528,"data":{"test":"data"},"text":"Test Message","version":2}`,
		string(jsonData))
}

func TestNewDatasetStatus(t *testing.T) {
	loadedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	status := NewDatasetStatus("final_dataset.csv", 14, loadedAt, "test", []string{"Country"})

	assert.Equal(t, "final_dataset.csv", status.Source)
	assert.Equal(t, 14, status.Records)
	assert.Equal(t, loadedAt.UnixMilli(), status.LoadedAt)
	assert.Equal(t, "2025-03-01T12:00:00Z", status.ReadableLoadedAt)
	assert.Equal(t, []string{"Country"}, status.Columns)
}

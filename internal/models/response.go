package models

import (
	"net/http"
	"time"
)

// ResponseVersion is the envelope version of every successful response.
const ResponseVersion = 2

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// NewResponse wraps data in the envelope with the given status code and text.
func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     ResponseVersion,
	}
}

func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(http.StatusOK, data, "OK")
}

// NewEntryResponse returns a single value as data.entry.
func NewEntryResponse(entry interface{}) ResponseModel {
	data := map[string]interface{}{
		"entry": entry,
	}
	return NewOKResponse(data)
}

// NewEmptyEntryResponse is a 200 with a null entry and an explanation.
func NewEmptyEntryResponse(text string) ResponseModel {
	data := map[string]interface{}{
		"entry": nil,
	}
	return NewResponse(http.StatusOK, data, text)
}

// NewListResponse returns a collection as data.list.
func NewListResponse(list interface{}, limitExceeded bool) ResponseModel {
	data := map[string]interface{}{
		"limitExceeded": limitExceeded,
		"list":          list,
	}
	return NewOKResponse(data)
}

// ResponseCurrentTime is the envelope timestamp in Unix milliseconds.
func ResponseCurrentTime() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

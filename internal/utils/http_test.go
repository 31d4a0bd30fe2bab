package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestExtractParam(t *testing.T) {
	testCases := []struct {
		name string
		path string
		want string
	}{
		{
			name: "Basic slug",
			path: "/api/test/continent",
			want: "continent",
		},
		{
			name: "Slug with JSON extension",
			path: "/api/test/gdp-per-capita.json",
			want: "gdp-per-capita",
		},
		{
			name: "Value with multiple dots",
			path: "/api/test/1.5.json",
			want: "1.5",
		},
		{
			name: "Escaped space",
			path: "/api/test/North%20America",
			want: "North America",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()

			var result string
			router.HandlerFunc(http.MethodGet, "/api/test/:id", func(w http.ResponseWriter, r *http.Request) {
				result = ExtractParam(r, "id")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.want, result)
		})
	}
}

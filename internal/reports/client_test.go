package reports_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcncore/internal/models"
	"tcncore/internal/reports"
	"tcncore/internal/structures"
	"tcncore/internal/testutil"
)

func clientFor(url string) reports.ReportsApi {
	conf := &structures.Config{
		Reports: structures.ReportsConfig{ApiUrl: url, RequestTimeout: 5},
	}
	return reports.NewClient(conf, &testutil.MockLogger{})
}

func TestGetReportsParsesResponse(t *testing.T) {
	var gotNumber, gotLength string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/reports", r.URL.Path)
		gotNumber = r.URL.Query().Get("intervalNumber")
		gotLength = r.URL.Query().Get("intervalLength")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]string{"cmVwb3J0MQ==", "cmVwb3J0Mg=="})
	}))
	defer server.Close()

	api := clientFor(server.URL)
	got, err := api.GetReports(models.ReportsInterval{Number: 73538, Length: 21600})
	require.NoError(t, err)

	assert.Equal(t, []string{"cmVwb3J0MQ==", "cmVwb3J0Mg=="}, got)
	assert.Equal(t, "73538", gotNumber)
	assert.Equal(t, "21600", gotLength)
}

func TestGetReportsReturnsErrorOnServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	api := clientFor(server.URL)
	_, err := api.GetReports(models.ReportsInterval{Number: 1, Length: 21600})
	assert.ErrorContains(t, err, "status 500")
}

func TestPostReportSendsBody(t *testing.T) {
	var gotBody string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/reports", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	api := clientFor(server.URL)
	require.NoError(t, api.PostReport("c2lnbmVkcmVwb3J0"))

	assert.Equal(t, "c2lnbmVkcmVwb3J0", gotBody)
	assert.Equal(t, "text/plain", gotContentType)
}

func TestPostReportReturnsErrorOnRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	api := clientFor(server.URL)
	assert.ErrorContains(t, api.PostReport("payload"), "status 400")
}

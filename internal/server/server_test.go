package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/logger"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/monitoring"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/report"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/session"
)

const (
	infoCSV  = "Ingredient,Unit Cost\nTomatoes,2.50\nOnions,1.20\n"
	stockCSV = "Ingredient,Received Qty\nTomatoes,150\nOnions,90\n"
	usageCSV = "Ingredient,Used Qty\nTomatoes,120\nOnions,70\n"
	wasteCSV = "Ingredient,Wasted Qty\nTomatoes,8\nOnions,20\n"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore(time.Minute)
	t.Cleanup(store.Close)

	log := logger.New(logger.Config{Level: "error", Format: "text"}, io.Discard)
	return New(store, monitoring.NewCollector(), log, report.DefaultThresholds(), time.Hour)
}

func uploadBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func allFiles() map[string]string {
	return map[string]string{
		"ingredient_info": infoCSV,
		"input_stock":     stockCSV,
		"usage":           usageCSV,
		"waste":           wasteCSV,
	}
}

func createReport(t *testing.T, s *Server) string {
	t.Helper()
	body, contentType := uploadBody(t, allFiles())
	req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ReportID string `json:"report_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ReportID)
	return resp.ReportID
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateReport(t *testing.T) {
	s := newTestServer(t)

	body, contentType := uploadBody(t, allFiles())
	req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ReportID string         `json:"report_id"`
		RowCount int            `json:"row_count"`
		Summary  report.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ReportID)
	assert.Equal(t, 2, resp.RowCount)
	assert.Equal(t, 2, resp.Summary.TotalIngredients)
	assert.InDelta(t, 483.0, resp.Summary.TotalCost, 0.01)
}

func TestCreateReportMissingFile(t *testing.T) {
	s := newTestServer(t)

	files := allFiles()
	delete(files, "waste")
	body, contentType := uploadBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "waste")
}

func TestCreateReportEmptyCSV(t *testing.T) {
	s := newTestServer(t)

	files := allFiles()
	files["usage"] = "\n\n"
	body, contentType := uploadBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReportSurfacesWarnings(t *testing.T) {
	s := newTestServer(t)

	files := allFiles()
	files["usage"] = "Ingredient,Used Qty\nTomatoes,abc\nOnions,70\n"
	body, contentType := uploadBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Warnings []struct {
			Kind string `json:"kind"`
		} `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "non_numeric_value", resp.Warnings[0].Kind)
}

func TestGetReport(t *testing.T) {
	s := newTestServer(t)
	id := createReport(t, s)

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Metrics []report.Metrics `json:"metrics"`
		Summary report.Summary   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Metrics, 2)
	assert.Equal(t, "Tomatoes", resp.Metrics[0].Ingredient)
	assert.Equal(t, 2, resp.Summary.TotalIngredients)
}

func TestGetReportFilterAndSort(t *testing.T) {
	s := newTestServer(t)
	id := createReport(t, s)

	rec := httptest.NewRecorder()
	url := "/api/reports/" + id + "?filter=high_waste&sort=waste_cost&order=desc"
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Metrics []report.Metrics `json:"metrics"`
		Summary report.Summary   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Only Onions wastes more than the 15% threshold (20 of 90 received).
	require.Len(t, resp.Metrics, 1)
	assert.Equal(t, "Onions", resp.Metrics[0].Ingredient)
	assert.Equal(t, 1, resp.Summary.TotalIngredients)
}

func TestGetReportUnknownID(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetReportBadFilter(t *testing.T) {
	s := newTestServer(t)
	id := createReport(t, s)

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"?filter=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bogus")
}

func TestGetReportBadSortKey(t *testing.T) {
	s := newTestServer(t)
	id := createReport(t, s)

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"?sort=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportExcel(t *testing.T) {
	s := newTestServer(t)
	id := createReport(t, s)

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"/export/excel", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestExportPDF(t *testing.T) {
	s := newTestServer(t)
	id := createReport(t, s)

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"/export/pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestExportUnknownFormat(t *testing.T) {
	s := newTestServer(t)
	id := createReport(t, s)

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"/export/csv", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

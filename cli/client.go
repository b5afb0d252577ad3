package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// ApiClient talks to the ingredient tracker API.
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a client pointed at TRACKER_API_URL, defaulting to
// localhost.
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("TRACKER_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
		BaseURL: baseURL,
	}
}

// CheckHealth checks if the API is up and running.
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/healthz")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("health check failed with status code: %d", resp.StatusCode)
	}

	return true, nil
}

// Metrics mirrors one reconciled ingredient record from the API.
type Metrics struct {
	Ingredient       string  `json:"ingredient"`
	UnitCost         float64 `json:"unit_cost"`
	ReceivedQty      float64 `json:"received_qty"`
	UsedQty          float64 `json:"used_qty"`
	WastedQty        float64 `json:"wasted_qty"`
	ExpectedUse      float64 `json:"expected_use"`
	Shrinkage        float64 `json:"shrinkage"`
	UsedCost         float64 `json:"used_cost"`
	WasteCost        float64 `json:"waste_cost"`
	ShrinkageCost    float64 `json:"shrinkage_cost"`
	TotalCost        float64 `json:"total_cost"`
	WastePercent     float64 `json:"waste_percent"`
	ShrinkagePercent float64 `json:"shrinkage_percent"`
}

// Summary mirrors the aggregate block from the API.
type Summary struct {
	TotalIngredients    int     `json:"total_ingredients"`
	TotalCost           float64 `json:"total_cost"`
	TotalWasteCost      float64 `json:"total_waste_cost"`
	TotalShrinkageCost  float64 `json:"total_shrinkage_cost"`
	AvgWastePercent     float64 `json:"avg_waste_percent"`
	AvgShrinkagePercent float64 `json:"avg_shrinkage_percent"`
}

// Alert mirrors a threshold advisory from the API.
type Alert struct {
	Type       string  `json:"type"`
	Severity   string  `json:"severity"`
	Ingredient string  `json:"ingredient"`
	Message    string  `json:"message"`
	Value      float64 `json:"value"`
}

// Warning mirrors a data quality finding from the API.
type Warning struct {
	Dataset string `json:"dataset"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Report is the view returned by GET /api/reports/:id.
type Report struct {
	ReportID    string    `json:"report_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Metrics     []Metrics `json:"metrics"`
	Summary     Summary   `json:"summary"`
	Insights    []string  `json:"insights"`
	Alerts      []Alert   `json:"alerts"`
	Warnings    []Warning `json:"warnings"`
}

// CreateReport uploads the four CSV files keyed by dataset field name and
// returns the new report id.
func (c *ApiClient) CreateReport(files map[string]string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open %s: %w", path, err)
		}
		part, err := writer.CreateFormFile(field, filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		f.Close()
		if err != nil {
			return "", fmt.Errorf("attach %s: %w", path, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	resp, err := c.httpClient.Post(c.BaseURL+"/api/reports", writer.FormDataContentType(), body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", apiError(resp)
	}

	var created struct {
		ReportID string `json:"report_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.ReportID, nil
}

// GetReport fetches a stored report, optionally filtered and sorted.
func (c *ApiClient) GetReport(id, filter, sortField, order string) (*Report, error) {
	q := url.Values{}
	if filter != "" && filter != "all" {
		q.Set("filter", filter)
	}
	if sortField != "" {
		q.Set("sort", sortField)
		q.Set("order", order)
	}

	endpoint := c.BaseURL + "/api/reports/" + id
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var rep Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// ExportReport downloads the report in the given format ("excel" or "pdf")
// and writes it next to the working directory.
func (c *ApiClient) ExportReport(id, format string) (string, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/api/reports/" + id + "/export/" + format)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	ext := "pdf"
	if format == "excel" {
		ext = "xlsx"
	}
	name := fmt.Sprintf("ingredient-report-%s.%s", id, ext)
	out, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", err
	}
	return name, nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("%s (status %d)", body.Error, resp.StatusCode)
	}
	return fmt.Errorf("request failed with status code: %d", resp.StatusCode)
}

package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/canfin/internal/calculator"
	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, maxUploadSize int64) http.Handler {
	t.Helper()
	calc, err := calculator.New(zap.NewNop(), calculator.DefaultPolicy())
	if err != nil {
		t.Fatalf("calculator.New() error = %v", err)
	}
	return NewHandler(zap.NewNop(), calc, maxUploadSize, "1.2.3")
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func readTestConfig(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "test", "test_config.yaml"))
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}
	return data
}

func TestHandleNetWorth(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := postJSON(t, handler, "/api/networth", `{
		"assets": [{"type": "Cash", "value": 12000}, {"type": "Investments", "value": 48000}],
		"liabilities": [{"type": "Credit Card", "value": 2500}]
	}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculator.NetWorthSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.NetWorth.Equal(decimal.NewFromInt(57500)) {
		t.Errorf("expected net worth 57500, got %s", resp.NetWorth)
	}
	if len(resp.AssetsByType) != 2 {
		t.Errorf("expected 2 asset groups, got %d", len(resp.AssetsByType))
	}
}

func TestHandleBudget(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := postJSON(t, handler, "/api/budget", `{
		"incomes": [{"source": "Salary", "amount": 5000, "frequency": "monthly"}],
		"expenses": [
			{"category": "Housing", "amount": 1000, "classification": "fixed", "frequency": "monthly"},
			{"category": "Food", "amount": 150, "classification": "variable", "frequency": "weekly"},
			{"category": "Housing", "amount": 200, "classification": "fixed", "frequency": "weekly"}
		]
	}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculator.BudgetSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.ByCategory) != 2 || resp.ByCategory[0].Key != "Housing" {
		t.Fatalf("unexpected categories %+v", resp.ByCategory)
	}
	if !resp.ByCategory[0].Amount.Equal(decimal.RequireFromString("1866.67")) {
		t.Errorf("expected Housing 1866.67, got %s", resp.ByCategory[0].Amount)
	}
}

func TestHandleLoan(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := postJSON(t, handler, "/api/loan", `{
		"incomes": [{"source": "Salary", "amount": 10000}],
		"loan": {"type": "personal", "termYears": 5, "interestRate": 6}
	}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculator.Qualification
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.MaxMonthlyPayment.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected max monthly payment 4000, got %s", resp.MaxMonthlyPayment)
	}
	if len(resp.Schedule) != 5 {
		t.Errorf("expected 5 snapshots, got %d", len(resp.Schedule))
	}
}

func TestHandleLoanUndefinedRatio(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := postJSON(t, handler, "/api/loan", `{"loan": {"type": "heloc", "termYears": 2, "interestRate": 3}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		TDSR struct {
			Defined bool `json:"defined"`
		} `json:"tdsr"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TDSR.Defined {
		t.Error("expected an undefined TDSR without income")
	}
}

func TestHandleBadRequests(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"Malformed JSON", "/api/networth", `{"assets": [`},
		{"Unknown field", "/api/networth", `{"houses": []}`},
		{"Unknown frequency", "/api/budget", `{"incomes": [{"source": "Salary", "amount": 1, "frequency": "hourly"}]}`},
		{"Unknown classification", "/api/budget", `{"expenses": [{"category": "Rent", "amount": 1, "classification": "optional"}]}`},
		{"Unknown loan type", "/api/loan", `{"loan": {"type": "auto", "termYears": 5}}`},
		{"Unknown debt type", "/api/loan", `{"debts": [{"type": "payday"}]}`},
		{"Negative term", "/api/loan", `{"loan": {"type": "personal", "termYears": -1}}`},
		{"Negative rate", "/api/loan", `{"loan": {"type": "personal", "termYears": 5, "interestRate": -5}}`},
		{"Rate that zeroes the growth factor", "/api/loan", `{"incomes": [{"source": "Salary", "amount": 10000}], "loan": {"type": "personal", "termYears": 5, "interestRate": -1200}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, handler, tt.path, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp["error"] == "" {
				t.Error("expected error message in response")
			}
		})
	}
}

func TestHandleCalculateMultipart(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "test_config.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(readTestConfig(t)); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.NetWorth == nil || resp.Budget == nil || resp.Qualification == nil {
		t.Fatal("expected every section in response")
	}
	if !resp.Budget.MonthlyBalance.Equal(decimal.NewFromInt(2650)) {
		t.Errorf("expected monthly balance 2650, got %s", resp.Budget.MonthlyBalance)
	}
	if resp.Qualification.RequiredDownPayment == nil {
		t.Error("expected required down payment for the mortgage")
	}
	if !strings.HasPrefix(resp.CSV, "section,item,amount,percentage") {
		t.Errorf("expected CSV data in response, got %q", resp.CSV)
	}
	if resp.Duration == "" {
		t.Error("expected duration in response")
	}
	if !strings.Contains(resp.ConfigYAML, "tdsrCeiling: 40") {
		t.Errorf("expected normalized config YAML, got %q", resp.ConfigYAML)
	}
}

func TestHandleCalculateRawBody(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	yamlBody := "incomes:\n  - source: Salary\n    amount: 10000\nloan:\n  type: personal\n  termYears: 5\n  interestRate: 6\npolicy:\n  tdsrCeiling: 50\n"
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(yamlBody))
	req.Header.Set("Content-Type", "application/x-yaml")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// the uploaded policy overrides the server policy
	if !resp.Qualification.MaxMonthlyPayment.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected max monthly payment 5000, got %s", resp.Qualification.MaxMonthlyPayment)
	}
}

func TestHandleCalculateInvalidConfig(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	tests := map[string]string{
		"Malformed YAML":     "assets: [unclosed",
		"Invalid policy":     "policy:\n  tdsrCeiling: 140\n",
		"Invalid debt type":  "debts:\n  - type: payday\n",
		"Invalid output fmt": "output:\n  format: xml\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestHandleCalculateTooLarge(t *testing.T) {
	handler := newTestHandler(t, 64)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader(readTestConfig(t)))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleMissingFile(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("other", "value"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", resp["version"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	req := httptest.NewRequest(http.MethodGet, "/api/loan", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

// Package server exposes the calculators over a local JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/canfin/internal/calculator"
	"github.com/iwvelando/canfin/internal/config"
	"github.com/iwvelando/canfin/internal/report"
	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	calc          *calculator.Calculator
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler for the calculation API. The
// calculator's policy applies to the JSON endpoints.
func NewHandler(logger *zap.Logger, calc *calculator.Calculator, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, calc: calc, maxUploadSize: maxUploadSize, version: trimmedVersion}

	r := mux.NewRouter()
	r.Use(h.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/networth", h.handleNetWorth).Methods(http.MethodPost)
	api.HandleFunc("/budget", h.handleBudget).Methods(http.MethodPost)
	api.HandleFunc("/loan", h.handleLoan).Methods(http.MethodPost)
	api.HandleFunc("/calculate", h.handleCalculate).Methods(http.MethodPost)
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request handled",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type calculateResponse struct {
	output.Report
	CSV        string `json:"csv"`
	Duration   string `json:"duration"`
	ConfigYAML string `json:"configYaml,omitempty"`
}

func (h *handler) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleNetWorth"
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	summary := h.calc.NetWorth(req.ToAssets(), req.ToLiabilities())
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *handler) handleBudget(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBudget"
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	incomes, err := req.ToIncomes()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	expenses, err := req.ToExpenses()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	summary, err := h.calc.Budget(incomes, expenses)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *handler) handleLoan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLoan"
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	if err := req.ValidateLoan(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	app, err := req.ToLoanApplication()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	q, err := h.calc.Qualify(app)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, q)
}

// handleCalculate runs every calculator over an uploaded YAML snapshot. The
// snapshot is sent either as the multipart field "file" or as the raw body.
func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	data, ok := h.readUpload(w, r, op)
	if !ok {
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(data))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := cfg.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	calc, err := calculator.New(h.logger, cfg.ToPolicy())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := report.Build(calc, cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	normalized, err := yaml.Marshal(cfg)
	if err != nil {
		h.logger.Warn("failed to marshal configuration",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	elapsed := time.Since(start)
	h.logger.Info("calculation completed",
		zap.String("op", op),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Report:     result,
		CSV:        output.CsvString(result),
		Duration:   elapsed.String(),
		ConfigYAML: string(normalized),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeRequest reads a JSON body shaped like the YAML configuration.
func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, op string) (*config.Configuration, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req config.Configuration
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return nil, false
	}
	if req.Loan.Type == "" {
		req.Loan.Type = string(calculator.Personal)
	}
	if req.Loan.TermYears == 0 {
		req.Loan.TermYears = constants.DefaultLoanTermYears
	}
	return &req, true
}

func (h *handler) readUpload(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			h.respondUploadError(w, err, op)
			return nil, false
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "missing configuration file", op)
			return nil, false
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				h.logger.Warn("failed to close uploaded file",
					zap.String("op", op),
					zap.Error(closeErr),
				)
			}
		}()
		src = file
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		h.respondUploadError(w, err, op)
		return nil, false
	}
	return buf.Bytes(), true
}

func (h *handler) respondUploadError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err), op)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

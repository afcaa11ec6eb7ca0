package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/boddenberg/smart-gastos-api/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

const maxBodyBytes = 1 << 20

const internalErrorMessage = "internal server error"

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, domain.Response{Success: true, Data: data})
}

func writeSuccessMessage(w http.ResponseWriter, data any, msg string) {
	writeJSON(w, http.StatusOK, domain.Response{Success: true, Data: data, Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, domain.Response{Success: false, Error: msg})
}

// writeInternalError writes the generic 500 envelope. The underlying message
// is attached only when the request carries the error-detail flag.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	resp := domain.Response{Success: false, Error: internalErrorMessage}
	if exposeErrors(r.Context()) && err != nil {
		resp.Message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

// decodeJSON reads a JSON body into dst. Malformed bodies become validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.ErrValidation{Message: "request body is required"}
		}
		return &domain.ErrValidation{Message: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	return nil
}

// parsePagination reads page and limit. Missing or invalid values are left at
// zero so the service applies its defaults.
func parsePagination(r *http.Request) (page, limit int) {
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}
	return
}

func dateRange(r *http.Request, startKey, endKey string) domain.DateRange {
	q := r.URL.Query()
	return domain.DateRange{Start: q.Get(startKey), End: q.Get(endKey)}
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var validation *domain.ErrValidation

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("unhandled error", zap.String("path", r.URL.Path), zap.Error(err))
		writeInternalError(w, r, err)
	}
}

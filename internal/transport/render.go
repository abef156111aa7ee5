package transport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"crimson-pos/internal/middleware"
	"crimson-pos/internal/repository"
	"crimson-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// csvColumn renders one field of a row for a CSV export
type csvColumn[T any] struct {
	header string
	value  func(T) string
}

// respondRows writes rows as JSON or, with ?format=csv, as a CSV attachment
func respondRows[T any](w http.ResponseWriter, r *http.Request, filename string, rows []T, columns []csvColumn[T], logger *zap.Logger) {
	switch r.URL.Query().Get("format") {
	case "", "json":
		middleware.RespondWithJSON(w, http.StatusOK, rows)
		return
	case "csv":
	default:
		middleware.RespondWithError(w, http.StatusBadRequest, "unsupported format, use json or csv")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)

	// the status is already sent, so a failed export can only be logged
	if err := writeCSV(w, rows, columns); err != nil {
		logger.Error("CSV export failed",
			zap.String("path", r.URL.Path),
			zap.String("filename", filename),
			zap.Error(err),
		)
	}
}

func writeCSV[T any](out io.Writer, rows []T, columns []csvColumn[T]) error {
	cw := csv.NewWriter(out)
	record := make([]string, len(columns))
	for i, c := range columns {
		record[i] = c.header
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		for i, c := range columns {
			record[i] = c.value(row)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// bindJSON decodes and validates a request body, answering 400 itself on failure
func bindJSON(w http.ResponseWriter, r *http.Request, v interface{}, logger *zap.Logger) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.String("path", r.URL.Path), zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathID parses a positive numeric URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// respondServiceError maps domain errors onto the status taxonomy.
// Store faults surface their message with a 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, service.ErrInvalidOrder), errors.Is(err, service.ErrInvalidAdjustment):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrValueOutOfRange):
		status = http.StatusBadRequest
		message = "quantity or amount is out of range"
	case errors.Is(err, repository.ErrInvalidReference):
		status = http.StatusBadRequest
		message = "order references an unknown customer, employee or product"
	case errors.Is(err, repository.ErrProductNotFound):
		status = http.StatusNotFound
		message = "Product not found"
	case errors.Is(err, repository.ErrOrderNotFound):
		status = http.StatusNotFound
		message = "Order not found"
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}

	middleware.RespondWithError(w, status, message)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func itoa[T int | int64](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

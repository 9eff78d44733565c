package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorImplementsError(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestErrValidationCarriesField(t *testing.T) {
	err := ErrValidation("pdf", "required")
	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "pdf", details.Field)
}

func TestHandleErrorAPIError(t *testing.T) {
	h := NewErrorHandler(slog.Default())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/reports/xyz", nil)

	h.HandleError(w, r, ErrReportNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/REPORT_NOT_FOUND", problem.Type)
	assert.Equal(t, http.StatusNotFound, problem.Status)
	assert.Equal(t, "/api/reports/xyz", problem.Instance)
}

func TestHandleErrorWrappedAPIError(t *testing.T) {
	h := NewErrorHandler(slog.Default())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/reports", nil)

	h.HandleError(w, r, fmt.Errorf("processing: %w", ErrDocumentUnreadable))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleErrorUnknownErrorBecomes500(t *testing.T) {
	h := NewErrorHandler(slog.Default())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(w, r, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecoverer(t *testing.T) {
	h := NewErrorHandler(slog.Default())
	handler := h.Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDocumentUnreadableError(t *testing.T) {
	err := DocumentUnreadableError(errors.New("only 2 lines"))
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, "only 2 lines", err.Details)
}

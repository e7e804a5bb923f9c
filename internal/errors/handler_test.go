package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleError_APIError(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis", nil)

	h.HandleError(rec, req, SourceUnavailableError(fmt.Errorf("open data.csv: no such file")))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeSourceUnreadable, body["type"])
	assert.Equal(t, "SOURCE_UNREADABLE", body["error_code"])
	assert.Equal(t, "/api/dashboard/kpis", body["instance"])
	assert.Contains(t, body["detail"], "no such file")
}

func TestHandleError_ContextDeadline(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	h.HandleError(rec, req, fmt.Errorf("loading: %w", context.DeadlineExceeded))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, TypeTimeout, decodeProblem(t, rec)["type"])
}

func TestHandleError_UnknownError(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	h.HandleError(rec, req, fmt.Errorf("something private broke"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, body["type"])
	// Internal details never leak to clients.
	assert.NotContains(t, rec.Body.String(), "something private broke")
}

func TestHandleError_NilError(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(rec, req, nil)

	assert.Empty(t, rec.Body.String())
}

func TestErrorToProblem_ValidationDetails(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	problem := h.ErrorToProblem(ErrValidation("format", "must be csv or xlsx"), req)

	assert.Equal(t, http.StatusBadRequest, problem.Status)
	assert.Equal(t, TypeValidation, problem.Type)
	assert.Equal(t, "VALIDATION_FAILED", problem.Extensions["error_code"])

	details, ok := problem.Extensions["details"].(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "format", details.Field)
}

func TestProblemDetails_MarshalExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusTooManyRequests, TypeRateLimit,
		"Rate Limit Exceeded", "slow down", "/api/dashboard").
		WithExtension("retry_after", 60)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, TypeRateLimit, body["type"])
	assert.Equal(t, float64(60), body["retry_after"])
}

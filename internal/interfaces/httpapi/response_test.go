package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fight-ledger/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteData_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeData(rec, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "2.0", body["apiVersion"])
	assert.Contains(t, body, "data")
	assert.NotContains(t, body, "error")
}

func TestWriteError_MapsSentinels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
		wantMsg    string
	}{
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: threshold must be a number", usecase.ErrInvalidInput),
			wantCode:   http.StatusBadRequest,
			wantStatus: "INVALID_ARGUMENT",
			wantMsg:    "invalid input: threshold must be a number",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("%w: event evt-9", usecase.ErrNotFound),
			wantCode:   http.StatusNotFound,
			wantStatus: "NOT_FOUND",
			wantMsg:    "resource not found: event evt-9",
		},
		{
			name:       "dependency",
			err:        fmt.Errorf("%w: redis", usecase.ErrDependencyUnavailable),
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "UNAVAILABLE",
			wantMsg:    "dependency unavailable: redis",
		},
		{
			name:       "unclassified",
			err:        errors.New("dial tcp 10.0.0.3:6379: connection refused"),
			wantCode:   http.StatusInternalServerError,
			wantStatus: "INTERNAL",
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.NotContains(t, body, "data")
			errObj, ok := body["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, errObj["status"])
			assert.Equal(t, tt.wantMsg, errObj["message"])
			assert.EqualValues(t, tt.wantCode, errObj["code"])
		})
	}
}

func TestWriteError_UnavailableSetsRetryAfter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, usecase.ErrDependencyUnavailable)
	assert.Equal(t, "5", rec.Header().Get("Retry-After"))

	rec = httptest.NewRecorder()
	writeError(rec, usecase.ErrNotFound)
	assert.Empty(t, rec.Header().Get("Retry-After"))
}

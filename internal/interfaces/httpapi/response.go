package httpapi

import (
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fight-ledger/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "fight-ledger"
)

// envelope follows the Google JSON style guide: data on success, error
// otherwise, never both.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorKind struct {
	target     error
	httpStatus int
	reason     string
	status     string
}

var (
	errorKinds = []errorKind{
		{target: usecase.ErrInvalidInput, httpStatus: http.StatusBadRequest, reason: "invalidInput", status: "INVALID_ARGUMENT"},
		{target: usecase.ErrNotFound, httpStatus: http.StatusNotFound, reason: "notFound", status: "NOT_FOUND"},
		{target: usecase.ErrDependencyUnavailable, httpStatus: http.StatusServiceUnavailable, reason: "dependencyUnavailable", status: "UNAVAILABLE"},
	}
	internalErrorKind = errorKind{httpStatus: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}
)

func classifyError(err error) errorKind {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.target) {
			return kind
		}
	}
	return internalErrorKind
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError maps usecase sentinels to HTTP statuses. Unclassified errors
// are reported as a bare internal error so driver details stay in the logs.
func writeError(w http.ResponseWriter, err error) {
	kind := classifyError(err)
	message := "internal server error"
	if kind.target != nil {
		message = err.Error()
	}
	if kind.httpStatus == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "5")
	}

	writeJSON(w, kind.httpStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    kind.httpStatus,
			Message: message,
			Status:  kind.status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: kind.reason, Message: message}},
		},
	})
}

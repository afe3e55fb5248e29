// Package api exposes the advisory pipeline over HTTP: the overview
// endpoint the UI renders from, plus the small mutation surface (dismiss,
// task status, notification settings). Handlers translate AppErrors into
// the standard JSON error envelope.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"cropwatch/internal/types"
)

// envelope is the standard success wrapper.
type envelope struct {
	Data any `json:"data"`
}

// errorBody is the standard error wrapper.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// writeJSON writes a success response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

// writeError maps err to the error envelope. Non-AppErrors become opaque
// internal errors so no internals leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		appErr = types.NewAppError(types.ErrCodeInternalUnexpected, "an unexpected error occurred", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus())
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorDetail{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
	}})
}

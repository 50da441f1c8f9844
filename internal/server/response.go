package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roach88/launchdash/internal/chart"
	"github.com/roach88/launchdash/internal/dashboard"
)

// Error codes for request failures that are not control errors.
const (
	ErrCodeBadRequest      = "E001" // Malformed request body or query
	ErrCodeSessionNotFound = "E002" // Unknown or evicted session id
	ErrCodeInternal        = "E003" // Unexpected failure
)

// Response is the JSON envelope of every API response.
type Response struct {
	Status string         `json:"status"`          // "ok" or "error"
	Data   any            `json:"data,omitempty"`  // success payload
	Error  *ResponseError `json:"error,omitempty"` // error details
}

// ResponseError is the error part of Response.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Status: "ok", Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{
		Status: "error",
		Error:  &ResponseError{Code: code, Message: message},
	})
}

// writeFailure maps err to a status code and error code.
//
//	*chart.RangeError                    422 E201
//	*dashboard.StateError bad value      400 E204/E205
//	*dashboard.StateError out of domain  422 E202/E203
//	dashboard.ErrSessionNotFound         404 E002
//	anything else                        500 E003
func writeFailure(w http.ResponseWriter, err error) {
	var (
		re *chart.RangeError
		se *dashboard.StateError
	)
	switch {
	case errors.As(err, &re):
		writeError(w, http.StatusUnprocessableEntity, chart.ErrCodeInvalidRange, err.Error())
	case errors.As(err, &se):
		status := http.StatusUnprocessableEntity
		if se.Code == dashboard.ErrCodeBadValue || se.Code == dashboard.ErrCodeUnknownControl {
			status = http.StatusBadRequest
		}
		writeError(w, status, se.Code, err.Error())
	case errors.Is(err, dashboard.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, ErrCodeSessionNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

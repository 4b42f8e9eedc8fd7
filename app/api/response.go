// Package api holds the response helpers and middleware shared by the
// storefront HTTP handlers.
package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/minimart/storefront/internal/logging"
	"github.com/minimart/storefront/internal/metrics"
)

// Problem is the body of a 500 response. It describes the failure category
// only and never carries internals.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
}

var internalProblem = Problem{
	Type:   "https://tools.ietf.org/html/rfc9110#section-15.6.1",
	Title:  "An error occurred while processing your request.",
	Status: http.StatusInternalServerError,
}

// OKResponse writes data as a 200 JSON response.
func OKResponse(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, "application/json", data)
}

// CreatedResponse writes data as a 201 JSON response with a Location header.
func CreatedResponse(w http.ResponseWriter, location string, data any) {
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusCreated, "application/json", data)
}

// StatusResponse writes data as a JSON response with the given status.
func StatusResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, "application/json", data)
}

// NoContentResponse writes an empty 204.
func NoContentResponse(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, "application/json", map[string]string{"error": message})
}

// NotFoundResponse writes a 404 whose body holds only the status text.
func NotFoundResponse(w http.ResponseWriter) {
	ErrorResponse(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// ProblemResponse logs err with the request context and writes the generic
// 500 problem document.
func ProblemResponse(w http.ResponseWriter, r *http.Request, err error) {
	metrics.StorageFaults.Inc()
	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, "application/problem+json", internalProblem)
}

func writeJSON(w http.ResponseWriter, status int, contentType string, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusInternalServerError)
		body, _ = json.Marshal(internalProblem)
		_, _ = w.Write(body)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

package server

import (
	"bwtnet/internal/ctxlog"
	"encoding/json"
	"net/http"
	"strconv"
)

type resultResponse struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	content, err := json.Marshal(v)
	if err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to marshal response", "error", err)
		status = http.StatusInternalServerError
		content = []byte(`{"error":"internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(status)
	if _, err := w.Write(content); err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

func errorHandler(status int, msg string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, status, msg)
	})
}

func notFoundHandler() http.Handler {
	return errorHandler(http.StatusNotFound, "not found")
}

func tooManyRequestsHandler() http.Handler {
	return errorHandler(http.StatusTooManyRequests, "too many requests")
}

func internalServerErrorHandler() http.Handler {
	return errorHandler(http.StatusInternalServerError, "internal server error")
}

func methodNotAllowedHandler(allow string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
}

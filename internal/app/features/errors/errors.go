// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs request failures with context and writes the JSON
// error body the client sees. Handlers hold one and call the Log*
// method matching the failure class.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs an internal failure and responds 500.
// userMsg is what the client sees; the error detail stays in the log.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	RenderError(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs a client error and responds 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	RenderError(w, http.StatusBadRequest, userMsg)
}

// LogNotFound responds 404 without logging; missing documents are
// routine, not failures.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, userMsg string) {
	RenderError(w, http.StatusNotFound, userMsg)
}

// RenderJSON writes v as a JSON response with the given status.
func RenderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RenderError writes a JSON error body with the given status.
func RenderError(w http.ResponseWriter, status int, msg string) {
	RenderJSON(w, status, map[string]string{"error": msg})
}

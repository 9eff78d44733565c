package errors

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"

	"creditcli/internal/infrastructure"
)

// ProblemDetails is the RFC 7807 response body.
type ProblemDetails struct {
	Type     string      `json:"type"`
	Title    string      `json:"title"`
	Status   int         `json:"status"`
	Detail   string      `json:"detail,omitempty"`
	Instance string      `json:"instance,omitempty"`
	TraceID  string      `json:"trace_id,omitempty"`
	Errors   interface{} `json:"errors,omitempty"`
}

// Render implements the render.Renderer interface.
func (p *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/problem+json")
	render.Status(r, p.Status)
	return nil
}

// ErrorHandler provides centralized error handling for HTTP handlers.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to RFC 7807 format and responds.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	problem := h.toProblem(r, err)

	logFn := h.logger.WarnContext
	if problem.Status >= http.StatusInternalServerError {
		logFn = h.logger.ErrorContext
	}
	logFn(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", problem.Status),
		slog.String("error", err.Error()))

	if renderErr := render.Render(w, r, problem); renderErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", renderErr.Error()))
	}
}

func (h *ErrorHandler) toProblem(r *http.Request, err error) *ProblemDetails {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = ErrInternalServer
	}

	return &ProblemDetails{
		Type:     "/errors/" + apiErr.ErrorCode,
		Title:    apiErr.Message,
		Status:   apiErr.StatusCode,
		Detail:   detailString(apiErr),
		Instance: r.URL.Path,
		TraceID:  infrastructure.GetTraceID(r.Context()),
		Errors:   structuredDetails(apiErr),
	}
}

func detailString(apiErr *APIError) string {
	if s, ok := apiErr.Details.(string); ok {
		return s
	}
	return ""
}

func structuredDetails(apiErr *APIError) interface{} {
	if _, ok := apiErr.Details.(string); ok {
		return nil
	}
	return apiErr.Details
}

// Recoverer is middleware converting panics into 500 problem responses.
func (h *ErrorHandler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))
				h.HandleError(w, r, ErrInternalServer)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

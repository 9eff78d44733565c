package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "creditcli/internal/errors"
	"creditcli/internal/middleware"
	"creditcli/internal/operations"
	"creditcli/internal/pdfdoc"
	"creditcli/internal/services"
)

// uploadRequest carries the validated upload metadata.
type uploadRequest struct {
	Filename string `json:"filename" validate:"required,max=255,pdffile"`
}

// ReportHandler handles report upload and download requests.
type ReportHandler struct {
	service        ReportServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	validator      *validator.Validate
	maxUploadBytes int64
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service ReportServiceInterface, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	v := validator.New()
	v.RegisterValidation("pdffile", isPDFFilename)

	return &ReportHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "report_handler")),
		errorHandler:   errorHandler,
		validator:      v,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upload)
	r.Get("/{id}/download/{format}", h.Download)
	return r
}

// Upload handles POST /api/reports. The document arrives as the "pdf"
// field of a multipart form; the response body carries the full
// recovered report.
func (h *ReportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"INVALID_MULTIPART",
			"Request body is not a valid multipart form",
		))
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingDocument)
		return
	}
	defer file.Close()

	req := uploadRequest{Filename: header.Filename}
	if err := h.validator.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("pdf", "uploaded file must be a .pdf document"))
		return
	}

	h.logger.InfoContext(r.Context(), "processing upload",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	result, err := h.service.ProcessUpload(r.Context(), file, header.Filename)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "upload processing failed",
			slog.String("request_id", reqID),
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))

		if errors.Is(err, pdfdoc.ErrTooLittleText) {
			h.errorHandler.HandleError(w, r, apierrors.ErrDocumentUnreadable)
			return
		}
		var stepErr *operations.StepError
		if errors.As(err, &stepErr) {
			if stepErr.StepID == operations.StepIDDecode {
				h.errorHandler.HandleError(w, r, apierrors.DocumentUnreadableError(err))
				return
			}
			h.errorHandler.HandleError(w, r, apierrors.PipelineError(err))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// Download handles GET /api/reports/{id}/download/{format}.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "id")
	format := chi.URLParam(r, "format")

	path, err := h.service.Artifact(r.Context(), reportID, format)
	if err != nil {
		if errors.Is(err, services.ErrUnknownFormat) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "format must be one of: json, xlsx"))
			return
		}
		if errors.Is(err, services.ErrArtifactNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrReportNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "serving artifact",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("report_id", reportID),
		slog.String("format", format))

	w.Header().Set("Content-Disposition", "attachment; filename=credit_report."+format)
	if format == "json" {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	http.ServeFile(w, r, path)
}

// isPDFFilename accepts names ending in .pdf after trimming whitespace.
func isPDFFilename(fl validator.FieldLevel) bool {
	name := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return strings.HasSuffix(name, ".pdf") && len(name) > len(".pdf")
}

package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"creditcli/internal/config"
	"creditcli/internal/files"
	"creditcli/internal/operations"
	"creditcli/pkg/contracts/domain"
)

// ReportResult is what a successful pipeline run produces: the recovered
// report plus the artifact paths keyed by format ("json", "xlsx").
type ReportResult struct {
	ID        string               `json:"id"`
	Report    *domain.CreditReport `json:"report"`
	Artifacts map[string]string    `json:"-"`
	Formats   []string             `json:"formats"`
}

// ReportService drives uploads through the processing pipeline and resolves
// generated artifacts for download.
type ReportService struct {
	files    *files.Manager
	pipeline *operations.Manager
	paths    *config.Paths
	logger   *slog.Logger
}

// NewReportService creates a new report service with injected dependencies.
func NewReportService(fm *files.Manager, pipeline *operations.Manager, paths *config.Paths, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		files:    fm,
		pipeline: pipeline,
		paths:    paths,
		logger:   logger.With(slog.String("component", "report_service")),
	}
}

// ProcessUpload stores the uploaded document in scratch space, runs the
// decode/parse/export pipeline, and removes the scratch copy. The report
// ID names the artifact directory for later downloads.
func (s *ReportService) ProcessUpload(ctx context.Context, r io.Reader, filename string) (*ReportResult, error) {
	tempPath, err := s.files.SaveUpload(r, filename)
	if err != nil {
		reportsFailed.Inc()
		return nil, fmt.Errorf("save upload: %w", err)
	}
	defer s.files.Remove(tempPath)

	reportID := uuid.New().String()
	outputDir := s.paths.ReportOutputDir(reportID)

	start := time.Now()
	state, err := s.pipeline.Run(ctx, tempPath, outputDir)
	parseDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		reportsFailed.Inc()
		return nil, err
	}
	reportsProcessed.Inc()

	formats := make([]string, 0, len(state.Artifacts))
	for format := range state.Artifacts {
		formats = append(formats, format)
	}

	s.logger.InfoContext(ctx, "report processed",
		slog.String("report_id", reportID),
		slog.String("operation_id", state.ID),
		slog.String("filename", filename),
		slog.Int("accounts", len(state.Report.Accounts)),
		slog.Int("collections", len(state.Report.Collections)),
		slog.Int("inquiries", len(state.Report.Inquiries)))

	return &ReportResult{
		ID:        reportID,
		Report:    state.Report,
		Artifacts: state.Artifacts,
		Formats:   formats,
	}, nil
}

// artifactNames maps a download format to its file on disk.
var artifactNames = map[string]string{
	"json": "credit_report.json",
	"xlsx": "credit_report.xlsx",
}

// Artifact resolves the on-disk path of a generated artifact.
func (s *ReportService) Artifact(ctx context.Context, reportID, format string) (string, error) {
	name, ok := artifactNames[format]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	path, err := s.files.Artifact(reportID, name)
	if err != nil {
		return "", fmt.Errorf("%w: %s/%s", ErrArtifactNotFound, reportID, format)
	}
	return path, nil
}

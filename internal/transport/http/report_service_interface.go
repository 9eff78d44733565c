package http

import (
	"context"
	"io"

	"creditcli/internal/services"
)

// ReportServiceInterface defines what the report handlers need from the
// service layer. Kept minimal so tests can substitute a mock.
type ReportServiceInterface interface {
	ProcessUpload(ctx context.Context, r io.Reader, filename string) (*services.ReportResult, error)
	Artifact(ctx context.Context, reportID, format string) (string, error)
}

// HealthServiceInterface defines the health check dependency.
type HealthServiceInterface interface {
	Check(ctx context.Context) *services.HealthStatus
}

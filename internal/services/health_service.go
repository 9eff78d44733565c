package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"creditcli/internal/config"
)

// HealthStatus is the health check response.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Runtime   map[string]string `json:"runtime,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthService reports process liveness and storage readiness.
type HealthService struct {
	version   string
	paths     *config.Paths
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthService creates a new health service.
func NewHealthService(version string, paths *config.Paths, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Check reports overall health. Storage problems degrade the status
// rather than failing the endpoint.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: map[string]string{
			"go_version": runtime.Version(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
		},
		Checks: map[string]string{},
	}

	for name, dir := range map[string]string{
		"temp_dir":   s.paths.TempDir,
		"output_dir": s.paths.OutputDir,
	} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			status.Checks[name] = "unavailable"
			status.Status = "degraded"
			s.logger.WarnContext(ctx, "storage directory unavailable",
				slog.String("check", name),
				slog.String("dir", dir))
			continue
		}
		status.Checks[name] = "ok"
	}

	return status
}

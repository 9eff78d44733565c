package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"creditcli/pkg/contracts/domain"
)

// JSONFileName is the artifact name for the serialized aggregate.
const JSONFileName = "credit_report.json"

// JSONWriter serializes a finished credit report to disk.
type JSONWriter struct {
	logger *slog.Logger
}

// NewJSONWriter creates a new JSON writer instance.
func NewJSONWriter(logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{logger: logger.With(slog.String("component", "json_writer"))}
}

// Write renders the report as indented JSON under outputDir and returns
// the file path.
func (w *JSONWriter) Write(report *domain.CreditReport, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	path := filepath.Join(outputDir, JSONFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	w.logger.Info("JSON report written",
		slog.String("path", path),
		slog.Int("bytes", len(data)))
	return path, nil
}

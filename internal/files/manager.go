package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"creditcli/internal/config"
)

// Manager owns the scratch and artifact directories: uploaded documents
// land in the temp dir under a unique name, generated artifacts are looked
// up per report ID.
type Manager struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewManager creates a new file manager instance.
func NewManager(paths *config.Paths, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{paths: paths, logger: logger.With(slog.String("component", "file_manager"))}
}

// SaveUpload streams an uploaded document into the temp directory and
// returns its path. The stored name is uuid-prefixed so concurrent
// uploads of identically named files never collide.
func (m *Manager) SaveUpload(r io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(m.paths.TempDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), SanitizeFilename(filename))
	path := filepath.Join(m.paths.TempDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	m.logger.Debug("upload saved",
		slog.String("path", path),
		slog.Int64("bytes", written))
	return path, nil
}

// Remove deletes a temp file, logging instead of failing when the file is
// already gone.
func (m *Manager) Remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		m.logger.Warn("failed to remove temp file",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}

// Artifact resolves a generated artifact for a report, guarding against
// path traversal in either component.
func (m *Manager) Artifact(reportID, filename string) (string, error) {
	if reportID != SanitizeFilename(reportID) || filename != SanitizeFilename(filename) {
		return "", fmt.Errorf("invalid artifact reference %q/%q", reportID, filename)
	}

	path := filepath.Join(m.paths.ReportOutputDir(reportID), filename)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("artifact not found: %w", err)
	}
	return path, nil
}

// SanitizeFilename strips path separators and traversal sequences from a
// client-supplied filename.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if name == "" || name == "." {
		return "upload"
	}
	return name
}

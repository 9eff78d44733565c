package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves every directory the application touches against one base
// directory, so relocating the data root is a single setting.
type Paths struct {
	BaseDir   string
	TempDir   string
	OutputDir string
	LogsDir   string
}

// NewPaths builds the resolved path set from configuration.
func NewPaths(cfg PathsConfig) *Paths {
	base := cfg.BaseDir
	if base == "" {
		base = "data"
	}
	return &Paths{
		BaseDir:   base,
		TempDir:   resolve(base, cfg.TempDir, "temp"),
		OutputDir: resolve(base, cfg.OutputDir, "output"),
		LogsDir:   resolve(base, cfg.LogsDir, "logs"),
	}
}

func resolve(base, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates every managed directory.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.BaseDir, p.TempDir, p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReportOutputDir returns the per-report artifact directory.
func (p *Paths) ReportOutputDir(reportID string) string {
	return filepath.Join(p.OutputDir, reportID)
}

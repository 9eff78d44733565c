package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"creditcli/internal/config"
	"creditcli/internal/exporter"
	"creditcli/internal/infrastructure"
	"creditcli/internal/operations"
	"creditcli/internal/parsing"
)

func main() {
	inDir := flag.String("in", ".", "PDF file or directory of PDF documents to process")
	outDir := flag.String("out", "output", "directory receiving per-document artifact folders")
	workers := flag.Int("workers", 0, "concurrent documents (0 uses the configured default)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if *workers <= 0 {
		*workers = cfg.Processing.Workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processed, failed, err := run(ctx, logger, cfg, *inDir, *outDir, *workers)
	if err != nil {
		logger.Error("batch run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("batch complete",
		slog.Int("processed", processed),
		slog.Int("failed", failed))

	// Per-document failures are tolerated; only a fully failed batch is
	// an error exit.
	if processed == 0 && failed > 0 {
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, inDir, outDir string, workers int) (int, int, error) {
	documents, err := findDocuments(inDir)
	if err != nil {
		return 0, 0, err
	}
	if len(documents) == 0 {
		return 0, 0, fmt.Errorf("no PDF documents found in %s", inDir)
	}

	logger.Info("batch starting",
		slog.Int("documents", len(documents)),
		slog.Int("workers", workers))

	parser := parsing.New(logger, parsing.Options{
		MinClusterWords: cfg.Processing.MinClusterWords,
		TopTolerance:    cfg.Processing.TopTolerance,
	})

	var processed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, doc := range documents {
		doc := doc
		g.Go(func() error {
			// Each document gets its own pipeline so a failure never
			// poisons shared state.
			pipeline := operations.NewManager(logger,
				&operations.DecodeStep{},
				&operations.ParseStep{Parser: parser},
				&operations.ExportStep{
					JSON:     exporter.NewJSONWriter(logger),
					Workbook: exporter.NewWorkbookWriter(logger),
				},
			)

			name := strings.TrimSuffix(filepath.Base(doc), filepath.Ext(doc))
			start := time.Now()
			if _, err := pipeline.Run(gctx, doc, filepath.Join(outDir, name)); err != nil {
				failed.Add(1)
				logger.Error("document failed",
					slog.String("document", doc),
					slog.String("error", err.Error()))
				if gctx.Err() != nil {
					return gctx.Err()
				}
				return nil
			}
			processed.Add(1)
			logger.Info("document processed",
				slog.String("document", doc),
				slog.Duration("duration", time.Since(start)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(processed.Load()), int(failed.Load()), err
	}
	return int(processed.Load()), int(failed.Load()), nil
}

func findDocuments(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input path: %w", err)
	}
	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil, fmt.Errorf("input file %s is not a PDF", path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var documents []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			documents = append(documents, filepath.Join(path, entry.Name()))
		}
	}
	return documents, nil
}

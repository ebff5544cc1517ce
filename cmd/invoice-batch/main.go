package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/export"
	"github.com/joseph-ayodele/invoice-extractor/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir      = flag.String("dir", "", "directory to process invoices from (required unless INPUT_DIR is set)")
		out      = flag.String("out", "", "output directory (optional, defaults to <dir>/output)")
		template = flag.String("template", "", "XLSX field template path (optional)")
	)
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration; flags override the environment.
	cfg := common.LoadConfig()
	if *dir != "" {
		cfg.Paths.InputDir = *dir
	}
	if *out != "" {
		cfg.Paths.OutputDir = *out
	}
	if *template != "" {
		cfg.Paths.TemplatePath = *template
	}
	if cfg.Paths.OutputDir == "" && cfg.Paths.InputDir != "" {
		cfg.Paths.OutputDir = filepath.Join(cfg.Paths.InputDir, "output")
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0755); err != nil {
		logger.Error("failed to create output directory", "dir", cfg.Paths.OutputDir, "error", err)
		os.Exit(1)
	}

	// Find all PDFs
	pdfs, err := listPDFs(cfg.Paths.InputDir)
	if err != nil {
		logger.Error("failed to scan input directory", "dir", cfg.Paths.InputDir, "error", err)
		os.Exit(1)
	}
	if len(pdfs) == 0 {
		printError("Error: no PDFs found in %s\n", cfg.Paths.InputDir)
		os.Exit(1)
	}
	logger.Info("starting batch", "dir", cfg.Paths.InputDir, "files", len(pdfs), "output", cfg.Paths.OutputDir)

	// Wire exporter and processor
	exporter := export.NewService(cfg.Paths.TemplatePath, logger)
	processor := pipeline.NewProcessor(logger, exporter, cfg.Paths.OutputDir)

	// Process each PDF; one document's failure never aborts the batch.
	stats := pipeline.NewStats()
	for _, path := range pdfs {
		res, err := processor.ProcessFile(ctx, path)
		if err != nil {
			stats.AddFailure()
			fmt.Printf("x %s: %v\n", filepath.Base(path), err)
			continue
		}
		stats.AddSuccess(res.Brand)
		fmt.Printf("+ %s -> %s [%s]\n", filepath.Base(path), filepath.Base(res.OutputPath), res.Brand)
	}

	// Log summary
	logger.Info("batch complete",
		"files", len(pdfs),
		"processed", stats.Processed(),
		"failed", stats.Failed,
	)

	fmt.Printf("\nSummary:\n")
	for _, brand := range constants.Brands {
		fmt.Printf("- %s: %d invoices\n", brand, stats.ByBrand[brand])
	}
	fmt.Printf("- failed: %d invoices\n", stats.Failed)
	fmt.Printf("Total: %d/%d processed\n", stats.Processed(), len(pdfs))
}

// listPDFs returns the sorted *.pdf paths directly inside dir.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var pdfs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			pdfs = append(pdfs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(pdfs)
	return pdfs, nil
}

// Package pipeline coordinates one document's pass through decode, brand
// detection, extraction, validation and export. Documents are independent:
// the processor keeps no state between files beyond the run tally.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/detect"
	"github.com/joseph-ayodele/invoice-extractor/internal/export"
	"github.com/joseph-ayodele/invoice-extractor/internal/extractor"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
	"github.com/joseph-ayodele/invoice-extractor/internal/schema"
)

// Processor runs detect -> extract -> validate -> export for one document
// at a time. Vendor- and field-level misses are absorbed inside the
// extractors; only document-level failures surface here, and even those
// leave the batch running.
type Processor struct {
	Logger    *slog.Logger
	Exporter  *export.Service
	OutputDir string
}

func NewProcessor(logger *slog.Logger, exporter *export.Service, outputDir string) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Exporter: exporter, OutputDir: outputDir}
}

// Result summarizes one successfully processed document.
type Result struct {
	DocID      uuid.UUID
	Path       string
	Brand      constants.Brand
	Record     schema.Record
	Items      extractor.ItemTable
	OutputPath string
}

// ProcessFile fully processes the PDF at path and writes its output
// workbook. An unrecognized brand or a decode failure returns an error and
// produces no partial output.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	docID := uuid.New()
	res := Result{DocID: docID, Path: path}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	doc, err := pdfio.Load(path)
	if err != nil {
		p.Logger.Error("processor.decode.failed", "doc_id", docID, "path", path, "err", err)
		return res, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	brand, ok := detect.Detect(strings.ToLower(doc.FullText()))
	if !ok {
		p.Logger.Warn("processor.brand.unknown", "doc_id", docID, "path", path)
		return res, fmt.Errorf("brand not recognized: %s", filepath.Base(path))
	}
	res.Brand = brand

	ext, ok := extractor.ForBrand(brand)
	if !ok {
		return res, fmt.Errorf("no extractor for brand %s", brand)
	}

	fields, items := ext.Extract(doc)
	rec := schema.Validate(fields)
	if err := schema.CheckRecord(rec); err != nil {
		// Coercion should make this unreachable; a breach is worth a log
		// line, not a failed document.
		p.Logger.Warn("processor.schema.breach", "doc_id", docID, "err", err)
	}
	res.Record = rec
	res.Items = items

	out, err := p.Exporter.WriteInvoiceXLSX(rec, items)
	if err != nil {
		p.Logger.Error("processor.export.failed", "doc_id", docID, "path", path, "err", err)
		return res, fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}

	res.OutputPath = outputName(p.OutputDir, path, brand)
	if err := os.WriteFile(res.OutputPath, out, 0644); err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}

	p.Logger.Info("processor.ok",
		"doc_id", docID,
		"path", path,
		"brand", brand,
		"invoice_number", rec.InvoiceNumber,
		"total_amount", rec.TotalAmount,
		"items", len(items.Rows),
		"output", res.OutputPath,
	)
	return res, nil
}

func outputName(outputDir, inputPath string, brand constants.Brand) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(outputDir, fmt.Sprintf("%s_%s_output.xlsx", base, brand))
}

// Stats tallies a run by brand plus the failure count.
type Stats struct {
	ByBrand map[constants.Brand]int
	Failed  int
}

func NewStats() *Stats {
	return &Stats{ByBrand: make(map[constants.Brand]int)}
}

func (s *Stats) AddSuccess(b constants.Brand) {
	s.ByBrand[b]++
}

func (s *Stats) AddFailure() {
	s.Failed++
}

// Processed returns the number of successfully processed documents.
func (s *Stats) Processed() int {
	n := 0
	for _, c := range s.ByBrand {
		n += c
	}
	return n
}

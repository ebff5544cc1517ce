// Package export produces the XLSX output workbook for one extracted
// invoice: a field sheet driven by an optional template, plus a line-item
// sheet when the document had any.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/extractor"
	"github.com/joseph-ayodele/invoice-extractor/internal/schema"
)

const (
	fieldsSheet = "Invoice_Fields"
	itemsSheet  = "Line_Items"
)

// Service writes extraction results as XLSX bytes.
type Service struct {
	fields []string // template field order
	logger *slog.Logger
}

// NewService builds a writer using the template at templatePath, falling
// back to the canonical field order when the path is empty or unreadable.
func NewService(templatePath string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	fields := constants.HeaderFields
	if templatePath != "" {
		loaded, err := loadTemplateFields(templatePath)
		if err != nil {
			logger.Warn("export.template.fallback", "path", templatePath, "err", err)
		} else if len(loaded) > 0 {
			fields = loaded
		}
	}
	return &Service{fields: fields, logger: logger}
}

// loadTemplateFields reads the template workbook's first sheet, taking
// every non-empty value of the "Field" column below its header row.
func loadTemplateFields(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read template rows: %w", err)
	}

	var fields []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if name := row[0]; name != "" {
			fields = append(fields, name)
		}
	}
	return fields, nil
}

// WriteInvoiceXLSX returns an XLSX workbook (as bytes) for one validated
// record and its line items. Template fields absent from the record come
// out blank.
func (s *Service) WriteInvoiceXLSX(rec schema.Record, items extractor.ItemTable) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(fieldsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(fieldsSheet, 1, 1, "Field")
	write(fieldsSheet, 2, 1, "Value")
	values := rec.Map()
	for i, field := range s.fields {
		write(fieldsSheet, 1, i+2, field)
		if v, ok := values[field]; ok {
			write(fieldsSheet, 2, i+2, v)
		} else {
			write(fieldsSheet, 2, i+2, "")
		}
	}
	_ = f.SetColWidth(fieldsSheet, "A", "A", 24)
	_ = f.SetColWidth(fieldsSheet, "B", "B", 60)

	if !items.Empty() {
		if _, err := f.NewSheet(itemsSheet); err != nil {
			return nil, err
		}
		for c, name := range items.Columns {
			write(itemsSheet, c+1, 1, name)
		}
		for r, row := range items.Rows {
			for c, cell := range row {
				write(itemsSheet, c+1, r+2, cell)
			}
		}
		_ = f.SetColWidth(itemsSheet, "B", "B", 48)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"fields", len(s.fields),
		"items", len(items.Rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

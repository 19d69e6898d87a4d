package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docsort/internal/ingest"
)

const (
	SheetOutcomes = "Outcomes"
	SheetSummary  = "Summary"
)

// Service produces XLSX reports of a sort run.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportRunXLSX returns an XLSX workbook (as bytes) with one row per processed
// file and a summary sheet with the run counters.
func (s *Service) ExportRunXLSX(sum ingest.Summary) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// rename the default sheet so the workbook has no empty "Sheet1"
	if err := f.SetSheetName("Sheet1", SheetOutcomes); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(SheetOutcomes)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Directory",
		"Source",
		"Target",
		"Status",
		"Doctype",
		"Issuer",
		"Mark",
		"Error",
	}
	if err := f.SetSheetRow(SheetOutcomes, "A1", &headers); err != nil {
		return nil, err
	}

	for i, o := range sum.Outcomes {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			o.Dir,
			o.SourceName,
			o.TargetName,
			string(o.Status),
			o.DocType,
			o.Issuer,
			o.Mark,
			truncate(o.Err, 240),
		}
		if err := f.SetSheetRow(SheetOutcomes, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(SheetOutcomes, "A", "A", 48) // directory
	_ = f.SetColWidth(SheetOutcomes, "B", "C", 36) // names
	_ = f.SetColWidth(SheetOutcomes, "D", "D", 20)
	_ = f.SetColWidth(SheetOutcomes, "E", "G", 24)
	_ = f.SetColWidth(SheetOutcomes, "H", "H", 60)

	summary := [][]any{
		{"Root", sum.Root},
		{"Directories", sum.Stats.Dirs},
		{"Entries", sum.Stats.Entries},
		{"Renamed", sum.Stats.OK},
		{"Quarantined", sum.Stats.Quarantined()},
		{"Unreadable", sum.Stats.Failed},
		{"Elapsed (s)", sum.Elapsed.Seconds()},
	}
	for i, r := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &r); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(SheetSummary, "A", "A", 16)
	_ = f.SetColWidth(SheetSummary, "B", "B", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"root", sum.Root,
		"rows", len(sum.Outcomes),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteRunXLSX renders the report and writes it to path, creating parent
// directories as needed.
func (s *Service) WriteRunXLSX(path string, sum ingest.Summary) error {
	data, err := s.ExportRunXLSX(sum)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

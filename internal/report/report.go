// Package report writes the end-of-run workbook: one column of filenames per
// designer folder plus a summary sheet.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/lumipallolabs/sgsplit/internal/logging"
	"github.com/lumipallolabs/sgsplit/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	FilesSheet   = "Designer Files"
	SummarySheet = "Summary"
)

// Default fill colors for classified cells
const (
	DefaultLightFill = "#E2EFDA"
	DefaultOtherFill = "#FCE4D6"
)

// Summary row labels, in sheet order
const (
	RowProcessed  = "Total Images Processed"
	RowLight      = "White Background Images"
	RowOther      = "Non-White Background Images"
	RowExtensions = "Supported Extensions"
	RowTime       = "Total Processing Time"
	RowDiscovered = "Images Discovered"
	RowSkipped    = "Skipped (No Group ID)"
	RowFailed     = "Failed Files"
	RowDesigners  = "Designers"
)

// ErrSameFills is returned when both classifications would share a color
var ErrSameFills = errors.New("light and other fills must differ")

// Fills holds the cell background per classification
type Fills struct {
	Light string
	Other string
}

// DefaultFills returns the built-in color pair
func DefaultFills() Fills {
	return Fills{Light: DefaultLightFill, Other: DefaultOtherFill}
}

func (f Fills) validate() error {
	if strings.EqualFold(f.Light, f.Other) {
		return ErrSameFills
	}
	return nil
}

// Writer renders snapshots to xlsx files
type Writer struct {
	fills Fills
}

// New creates a report writer
func New(fills Fills) *Writer {
	return &Writer{fills: fills}
}

// Write renders snap to path. The workbook is written under a temporary
// name in the same directory and renamed into place, so a failed write
// never leaves a truncated report behind.
func (w *Writer) Write(path string, snap model.Snapshot) error {
	if err := w.fills.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", FilesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := w.writeFiles(f, snap); err != nil {
		return fmt.Errorf("write %s: %w", FilesSheet, err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := writeSummary(f, snap); err != nil {
		return fmt.Errorf("write %s: %w", SummarySheet, err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:     "sgsplit",
		Title:       "Split Image Report",
		Identifier:  snap.RunID,
		Description: fmt.Sprintf("%d images across %d designers", snap.Processed, len(snap.Workers)),
	}); err != nil {
		return fmt.Errorf("doc props: %w", err)
	}

	return save(f, path)
}

func (w *Writer) writeFiles(f *excelize.File, snap model.Snapshot) error {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	light, err := fillStyle(f, w.fills.Light)
	if err != nil {
		return err
	}
	other, err := fillStyle(f, w.fills.Other)
	if err != nil {
		return err
	}

	for col, worker := range snap.Workers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(FilesSheet, cell, worker.Name); err != nil {
			return err
		}
		if err := f.SetCellStyle(FilesSheet, cell, cell, header); err != nil {
			return err
		}

		width := utf8.RuneCountInString(worker.Name)
		for row, file := range worker.Files {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(FilesSheet, cell, file.Name); err != nil {
				return err
			}
			style := other
			if file.Background == model.BackgroundLight {
				style = light
			}
			if err := f.SetCellStyle(FilesSheet, cell, cell, style); err != nil {
				return err
			}
			if n := utf8.RuneCountInString(file.Name); n > width {
				width = n
			}
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(FilesSheet, name, name, columnWidth(width)); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, snap model.Snapshot) error {
	rows := [][2]any{
		{"Metric", "Value"},
		{RowProcessed, snap.Processed},
		{RowLight, snap.Light},
		{RowOther, snap.Other},
		{RowExtensions, snap.ExtensionSummary()},
		{RowTime, model.FormatElapsed(snap.Elapsed)},
		{RowDiscovered, snap.Discovered},
		{RowSkipped, snap.Skipped},
		{RowFailed, snap.Failed},
		{RowDesigners, len(snap.Workers)},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &[]any{row[0], row[1]}); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", columnWidth(len(RowOther))); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "B", "B", columnWidth(len(snap.ExtensionSummary())))
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
}

// columnWidth pads a character count and keeps it inside excel's limit
func columnWidth(chars int) float64 {
	w := float64(chars) + 2
	if w < 12 {
		w = 12
	}
	if w > excelize.MaxColumnWidth {
		w = excelize.MaxColumnWidth
	}
	return w
}

func save(f *excelize.File, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sgsplit-report-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(0644); err != nil {
		logging.Debug.Printf("chmod %s: %v", tmpName, err)
	}

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename report: %w", err)
	}

	logging.Debug.Printf("report written to %s", path)
	return nil
}

// Package render produces the report artifacts: the styled spreadsheet and
// the fixed-layout document derived from it.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/domain"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// dateFormat renders application dates the way the report has always
// shown them.
const dateFormat = "mm/dd/yyyy"

// Config holds the artifact paths for a run.
type Config struct {
	OutputDir       string
	SpreadsheetFile string
	DocumentFile    string
}

// DefaultConfig returns the fixed artifact names the report has shipped
// under since the first revision.
func DefaultConfig() Config {
	return Config{
		OutputDir:       ".",
		SpreadsheetFile: "Accepted_RCOs_Report.xlsx",
		DocumentFile:    "Accepted_RCOs_Report.pdf",
	}
}

// Renderer writes report tables to spreadsheet files.
type Renderer struct {
	config Config
}

// NewRenderer creates a new renderer.
func NewRenderer(config Config) *Renderer {
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	return &Renderer{config: config}
}

// SpreadsheetPath returns the fixed local path of the spreadsheet artifact.
func (r *Renderer) SpreadsheetPath() string {
	return filepath.Join(r.config.OutputDir, r.config.SpreadsheetFile)
}

// DocumentPath returns the fixed local path of the document artifact.
func (r *Renderer) DocumentPath() string {
	return filepath.Join(r.config.OutputDir, r.config.DocumentFile)
}

// RenderSpreadsheet serializes the table to the spreadsheet artifact and
// returns its path. The sheet carries a leading index column in A, the
// display headers in B1:H1, and one row per record. Column widths, the
// date number format, and the page setup for the downstream document
// conversion are applied regardless of row count. The file is written to a
// temp path and renamed over the fixed artifact path, overwriting any
// prior run's output.
func (r *Renderer) RenderSpreadsheet(table domain.ReportTable) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, label := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return "", fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, label); err != nil {
			return "", fmt.Errorf("failed to write header %q: %w", label, err)
		}
	}

	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(dateFormat)})
	if err != nil {
		return "", fmt.Errorf("failed to create date style: %w", err)
	}

	for rowIdx, row := range table.Rows {
		indexCell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return "", fmt.Errorf("failed to resolve index cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, indexCell, rowIdx); err != nil {
			return "", fmt.Errorf("failed to write row index: %w", err)
		}
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+2, rowIdx+2)
			if err != nil {
				return "", fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return "", fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
			if _, ok := value.(time.Time); ok {
				if err := f.SetCellStyle(sheetName, cell, cell, dateStyle); err != nil {
					return "", fmt.Errorf("failed to style date cell %s: %w", cell, err)
				}
			}
		}
	}

	if err := applyColumnWidths(f); err != nil {
		return "", err
	}
	if err := applyPageSetup(f, len(table.Rows)+1); err != nil {
		return "", err
	}

	return r.writeArtifact(f)
}

// applyColumnWidths sets the fixed display widths. Column A is the index
// column, so the policy starts at B.
func applyColumnWidths(f *excelize.File) error {
	widths := []struct {
		start, end string
		width      float64
	}{
		{"B", "C", 50},
		{"D", "F", 25},
		{"G", "G", 50},
		{"H", "H", 25},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheetName, w.start, w.end, w.width); err != nil {
			return fmt.Errorf("failed to set width of %s:%s: %w", w.start, w.end, err)
		}
	}
	return nil
}

// applyPageSetup bakes the document page contract into the workbook:
// landscape, one page wide with unconstrained height, 0.5 margins, no
// header/footer margin, print area clipped to the populated extent.
func applyPageSetup(f *excelize.File, lastRow int) error {
	if err := f.SetSheetProps(sheetName, &excelize.SheetPropsOptions{
		FitToPage: boolPtr(true),
	}); err != nil {
		return fmt.Errorf("failed to set sheet props: %w", err)
	}
	if err := f.SetPageLayout(sheetName, &excelize.PageLayoutOptions{
		Orientation: strPtr("landscape"),
		FitToWidth:  intPtr(1),
		FitToHeight: intPtr(0),
	}); err != nil {
		return fmt.Errorf("failed to set page layout: %w", err)
	}
	if err := f.SetPageMargins(sheetName, &excelize.PageLayoutMarginsOptions{
		Top:    float64Ptr(0.5),
		Bottom: float64Ptr(0.5),
		Left:   float64Ptr(0.5),
		Right:  float64Ptr(0.5),
		Header: float64Ptr(0),
		Footer: float64Ptr(0),
	}); err != nil {
		return fmt.Errorf("failed to set page margins: %w", err)
	}
	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: fmt.Sprintf("%s!$A$1:$H$%d", sheetName, lastRow),
		Scope:    sheetName,
	}); err != nil {
		return fmt.Errorf("failed to set print area: %w", err)
	}
	return nil
}

// writeArtifact writes the workbook to a temp file in the output directory
// and promotes it over the fixed path, so a failed write never leaves a
// truncated artifact behind.
func (r *Renderer) writeArtifact(f *excelize.File) (string, error) {
	if err := os.MkdirAll(r.config.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to ensure output directory: %w", err)
	}
	tempFile, err := os.CreateTemp(r.config.OutputDir, "rco-report-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("failed to create temp spreadsheet: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = tempFile.Close()
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := f.WriteTo(tempFile); err != nil {
		return "", fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync spreadsheet: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close spreadsheet: %w", err)
	}

	finalPath := r.SpreadsheetPath()
	if err := os.Rename(tempPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to promote spreadsheet: %w", err)
	}
	cleanup = false
	return finalPath, nil
}

func strPtr(s string) *string       { return &s }
func boolPtr(b bool) *bool          { return &b }
func intPtr(i int) *int             { return &i }
func float64Ptr(f float64) *float64 { return &f }

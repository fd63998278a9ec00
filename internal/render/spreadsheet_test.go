package render

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/domain"

	"github.com/xuri/excelize/v2"
)

func sampleTable() domain.ReportTable {
	return domain.ReportTable{
		Columns: []string{
			"RCO", "RCO Address", "Application Date", "Organization Type",
			"Preferred Contact Method", "Contact Address", "Email",
		},
		Rows: [][]any{
			{
				"Acme Civic Assoc", "123 Main St",
				time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
				"RCO", "Email", "456 Oak Ave", "a@x.org",
			},
		},
	}
}

func renderToTemp(t *testing.T, table domain.ReportTable) string {
	t.Helper()
	renderer := NewRenderer(Config{
		OutputDir:       t.TempDir(),
		SpreadsheetFile: "Accepted_RCOs_Report.xlsx",
		DocumentFile:    "Accepted_RCOs_Report.pdf",
	})
	path, err := renderer.RenderSpreadsheet(table)
	if err != nil {
		t.Fatalf("render returned error: %v", err)
	}
	return path
}

func TestRenderSpreadsheetRoundTrip(t *testing.T) {
	table := sampleTable()
	path := renderToTemp(t, table)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open rendered spreadsheet: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 data row, got %d rows", len(rows))
	}

	// Header row: column A is the index column and stays empty.
	header := rows[0]
	for i, want := range table.Columns {
		if header[i+1] != want {
			t.Fatalf("header column %d: expected %q, got %q", i+1, want, header[i+1])
		}
	}

	data := rows[1]
	if data[0] != "0" {
		t.Fatalf("expected leading index cell 0, got %q", data[0])
	}
	if data[1] != "Acme Civic Assoc" || data[2] != "123 Main St" {
		t.Fatalf("unexpected data cells: %v", data[1:3])
	}
	if data[3] != "01/15/2024" {
		t.Fatalf("expected date rendered as 01/15/2024, got %q", data[3])
	}
	if data[7] != "a@x.org" {
		t.Fatalf("unexpected email cell: %q", data[7])
	}
}

func TestRenderSpreadsheetColumnWidths(t *testing.T) {
	// The width policy must hold for an empty table and a populated one.
	for _, table := range []domain.ReportTable{
		{Columns: sampleTable().Columns},
		sampleTable(),
	} {
		path := renderToTemp(t, table)
		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to open rendered spreadsheet: %v", err)
		}

		checks := map[string]float64{
			"B": 50, "C": 50,
			"D": 25, "E": 25, "F": 25,
			"G": 50,
			"H": 25,
		}
		for col, want := range checks {
			width, err := f.GetColWidth(sheetName, col)
			if err != nil {
				t.Fatalf("failed to read width of %s: %v", col, err)
			}
			if width != want {
				t.Fatalf("column %s: expected width %v, got %v", col, want, width)
			}
		}
		_ = f.Close()
	}
}

func TestRenderSpreadsheetPageSetup(t *testing.T) {
	path := renderToTemp(t, sampleTable())

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open rendered spreadsheet: %v", err)
	}
	defer func() { _ = f.Close() }()

	layout, err := f.GetPageLayout(sheetName)
	if err != nil {
		t.Fatalf("failed to read page layout: %v", err)
	}
	if layout.Orientation == nil || *layout.Orientation != "landscape" {
		t.Fatalf("expected landscape orientation, got %+v", layout.Orientation)
	}
	if layout.FitToWidth == nil || *layout.FitToWidth != 1 {
		t.Fatalf("expected fit to one page wide, got %+v", layout.FitToWidth)
	}
	if layout.FitToHeight == nil || *layout.FitToHeight != 0 {
		t.Fatalf("expected unconstrained page height, got %+v", layout.FitToHeight)
	}

	margins, err := f.GetPageMargins(sheetName)
	if err != nil {
		t.Fatalf("failed to read page margins: %v", err)
	}
	for name, got := range map[string]*float64{
		"top": margins.Top, "bottom": margins.Bottom,
		"left": margins.Left, "right": margins.Right,
	} {
		if got == nil || *got != 0.5 {
			t.Fatalf("expected %s margin 0.5, got %v", name, got)
		}
	}
	if margins.Header == nil || *margins.Header != 0 {
		t.Fatalf("expected header margin 0, got %v", margins.Header)
	}
	if margins.Footer == nil || *margins.Footer != 0 {
		t.Fatalf("expected footer margin 0, got %v", margins.Footer)
	}

	names := f.GetDefinedName()
	found := false
	for _, name := range names {
		if name.Name == "_xlnm.Print_Area" && name.RefersTo == "Sheet1!$A$1:$H$2" {
			found = true
		}
	}
	if !found {
		t.Fatalf("print area not clipped to populated extent: %+v", names)
	}
}

func TestRenderSpreadsheetHeaderOnly(t *testing.T) {
	table := domain.ReportTable{Columns: sampleTable().Columns}
	path := renderToTemp(t, table)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open rendered spreadsheet: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header-only sheet, got %d rows", len(rows))
	}
	if filepath.Base(path) != "Accepted_RCOs_Report.xlsx" {
		t.Fatalf("unexpected artifact name: %s", path)
	}
}

package render

import "context"

// SpreadsheetConverter turns a spreadsheet file into a fixed-layout
// document file. The page setup is already baked into the spreadsheet by
// the renderer, so implementations only need to honor it.
type SpreadsheetConverter interface {
	Convert(ctx context.Context, spreadsheetPath, documentPath string) error
}

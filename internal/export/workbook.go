// =============================================================================
// Kunstlotteri Report Tool - Results Workbook Export
// =============================================================================
//
// Writes the aggregation result as an XLSX workbook for manual review and
// archiving:
//
//   Summary   - one row per artwork with the headline metrics
//   Tickets   - every (artwork, buyer) aggregate, presentation order
//   Avvik     - non-exact-multiple totals, present only when any exist
//
// The Tickets sheet carries both the clamped and the raw ticket count so
// refund-netted buyers stay auditable even though they are excluded from
// the drawing lists.
//
// =============================================================================

package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/gavinconsulting/lotteri/internal/types"
	"github.com/gavinconsulting/lotteri/pkg/utils"
)

// Sheet names in the results workbook.
const (
	sheetSummary = "Summary"
	sheetTickets = "Tickets"
	sheetAvvik   = "Avvik"
)

// WriteWorkbook writes the results workbook into dir using the configured
// file-name format and returns the written path.
func WriteWorkbook(dir, nameFormat string, res *types.Result) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, res); err != nil {
		return "", err
	}
	if err := writeTicketsSheet(f, res); err != nil {
		return "", err
	}
	if len(res.NonExact) > 0 {
		if err := writeAvvikSheet(f, res); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, utils.GenerateOutputFileName(nameFormat, nil))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write results workbook: %w", err)
	}
	return path, nil
}

// writeSummarySheet renames the default sheet and fills the per-artwork
// headline metrics.
func writeSummarySheet(f *excelize.File, res *types.Result) error {
	if err := f.SetSheetName(f.GetSheetName(0), sheetSummary); err != nil {
		return err
	}

	writeRow(f, sheetSummary, 1, []any{"Artwork", "Buyers", "Tickets", "Gross (kr)"})
	row := 2
	for _, s := range res.Artworks {
		writeRow(f, sheetSummary, row, []any{
			s.ArtworkID,
			s.Buyers,
			s.TotalTickets,
			types.Kroner(s.TotalGrossOre),
		})
		row++
	}
	return nil
}

// writeTicketsSheet fills every aggregate entry in presentation order.
func writeTicketsSheet(f *excelize.File, res *types.Result) error {
	if _, err := f.NewSheet(sheetTickets); err != nil {
		return err
	}

	writeRow(f, sheetTickets, 1, []any{
		"Artwork", "Name", "Gross (kr)", "Raw tickets", "Tickets", "In draw", "Exact multiple",
	})
	row := 2
	for _, s := range res.Artworks {
		for _, e := range s.Entries {
			writeRow(f, sheetTickets, row, []any{
				e.ArtworkID,
				e.Name,
				types.Kroner(e.GrossOre),
				e.RawTickets,
				e.Tickets,
				e.ClampedTickets(),
				!e.NonExact,
			})
			row++
		}
	}
	return nil
}

// writeAvvikSheet fills the non-exact-multiple detail table.
func writeAvvikSheet(f *excelize.File, res *types.Result) error {
	if _, err := f.NewSheet(sheetAvvik); err != nil {
		return err
	}

	writeRow(f, sheetAvvik, 1, []any{"Artwork", "Name", "Paid (kr)", "Paid / unit price"})
	row := 2
	for _, e := range res.NonExact {
		writeRow(f, sheetAvvik, row, []any{
			e.ArtworkID,
			e.Name,
			types.Kroner(e.GrossOre),
			e.RawTickets,
		})
		row++
	}
	return nil
}

// writeRow sets one spreadsheet row's cell values starting at column A.
func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

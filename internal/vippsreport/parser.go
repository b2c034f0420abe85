// =============================================================================
// Kunstlotteri Report Tool - Vipps Report Parser
// =============================================================================
//
// This module turns a Vipps settlement export into a normalized table with
// named columns. The export is messy in three specific ways this parser
// deals with:
//
//   1. An arbitrary number of metadata rows precede the real header row.
//      The header row is located by scanning for a marker column label
//      ("Salgssted") as a distinct, case-insensitive word.
//   2. Some exports repeat the header labels as the first data row. When
//      the cell under the marker column equals the marker itself, that row
//      is promoted to be the label row and dropped from the data.
//   3. Column labels carry stray whitespace and the odd export writes the
//      literal text "nan" into empty cells. Labels are trimmed; "nan"
//      cells are canonicalized to empty so downstream code can do plain
//      presence checks.
//
// Both .xlsx (the normal case) and .csv exports of the same report are
// accepted; everything after the raw grid read is format-independent.
//
// =============================================================================

package vippsreport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// headerScanLimit caps how many leading rows are scanned for the header
// marker. The header sits within the first handful of rows in every export
// seen so far; the cap keeps a wrong file from being scanned end to end.
const headerScanLimit = 200

// =============================================================================
// RAW GRID
// =============================================================================

// RawTable is the unprocessed spreadsheet contents: rows of cells with no
// assumed header. It only lives long enough to locate the header row and
// normalize the report.
type RawTable [][]string

// ReadRaw reads a report file into a raw grid. The file format is picked by
// extension: .xlsx via excelize, .csv via encoding/csv. Rows may have
// ragged lengths; nothing is trimmed or interpreted at this stage.
func ReadRaw(path string) (RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readRawXLSX(path)
	case ".csv":
		return readRawCSV(path)
	default:
		return nil, fmt.Errorf("unsupported report format %q (expected .xlsx or .csv)", filepath.Ext(path))
	}
}

// readRawXLSX reads the first sheet of an XLSX workbook as a raw grid.
func readRawXLSX(path string) (RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("report file has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return RawTable(rows), nil
}

// readRawCSV reads a CSV export as a raw grid.
func readRawCSV(path string) (RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Metadata rows above the header have fewer cells than data rows.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return RawTable(rows), nil
}

// =============================================================================
// HEADER LOCATOR
// =============================================================================

// FindHeaderRow scans at most the first headerScanLimit rows of the raw
// grid for a cell containing the marker as a distinct, case-insensitive
// word, and returns the index of the first matching row.
//
// Word-boundary matching matters: the marker embedded in a longer word
// (e.g. "Salgsstedet" in a metadata row) must not count as the header.
func FindHeaderRow(raw RawTable, marker string) (int, bool) {
	re := markerPattern(marker)

	limit := len(raw)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for i := 0; i < limit; i++ {
		for _, cell := range raw[i] {
			if re.MatchString(cell) {
				return i, true
			}
		}
	}
	return 0, false
}

// markerPattern builds the case-insensitive whole-word pattern for a
// header marker.
func markerPattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(marker)) + `\b`)
}

// =============================================================================
// NORMALIZED REPORT
// =============================================================================

// Report is the normalized table: clean, unique column labels and the data
// rows below the header.
type Report struct {
	// SourceFile is the file the report was read from.
	SourceFile string

	// HeaderRow is the 0-indexed raw-grid row the labels came from.
	HeaderRow int

	// Columns are the cleaned column labels, in sheet order.
	Columns []string

	// Rows are the data rows.
	Rows []Record
}

// Record is one data row with named fields.
type Record struct {
	// Fields maps column label to the cell value. Values are trimmed and
	// "nan" placeholder text is canonicalized to the empty string.
	Fields map[string]string

	// SourceRow is the 1-indexed position of this row in the raw grid,
	// for error messages and the debug view.
	SourceRow int
}

// Get returns the value for a column label, or "" when the report has no
// such column.
func (r Record) Get(column string) string {
	return r.Fields[column]
}

// Has reports whether the field is present with a non-empty value.
func (r Record) Has(column string) bool {
	return r.Fields[column] != ""
}

// HasColumn reports whether the report carries a column with this label.
func (rep *Report) HasColumn(label string) bool {
	for _, c := range rep.Columns {
		if c == label {
			return true
		}
	}
	return false
}

// RequireColumns verifies that every given label is present, returning a
// SchemaError naming all missing labels at once.
func (rep *Report) RequireColumns(labels []string) error {
	var missing []string
	for _, label := range labels {
		if !rep.HasColumn(label) {
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// =============================================================================
// PARSING
// =============================================================================

// Parse reads a report file, locates the header row and returns the
// normalized report. It returns a *FormatError when the marker is nowhere
// in the scan window. Column presence is NOT checked here; callers decide
// which columns they require via RequireColumns.
func Parse(path, marker string) (*Report, error) {
	raw, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}

	headerRow, ok := FindHeaderRow(raw, marker)
	if !ok {
		scanned := len(raw)
		if scanned > headerScanLimit {
			scanned = headerScanLimit
		}
		return nil, &FormatError{Marker: marker, Scanned: scanned}
	}

	rep := Normalize(raw, headerRow, marker)
	rep.SourceFile = path
	return rep, nil
}

// Normalize builds a Report from a raw grid and a located header row.
//
// If the first data row repeats the marker label under the marker column,
// the export duplicated its header; that row's values become the real
// labels and the row itself is dropped.
func Normalize(raw RawTable, headerRow int, marker string) *Report {
	labels := trimCells(raw[headerRow])
	dataStart := headerRow + 1

	if dataStart < len(raw) {
		if idx := findMarkerColumn(labels, marker); idx >= 0 {
			first := trimCells(raw[dataStart])
			if idx < len(first) && strings.EqualFold(strings.TrimSpace(first[idx]), strings.TrimSpace(marker)) {
				labels = first
				dataStart++
			}
		}
	}

	labels = cleanLabels(labels)

	rep := &Report{
		HeaderRow: headerRow,
		Columns:   labels,
	}

	for i := dataStart; i < len(raw); i++ {
		row := raw[i]
		if isRowEmpty(row) {
			continue
		}

		fields := make(map[string]string, len(labels))
		for j, label := range labels {
			var cell string
			if j < len(row) {
				cell = normalizeCell(row[j])
			}
			fields[label] = cell
		}

		rep.Rows = append(rep.Rows, Record{
			Fields:    fields,
			SourceRow: i + 1,
		})
	}

	return rep
}

// findMarkerColumn returns the index of the label equal to the marker
// (case-insensitive, trimmed), or -1.
func findMarkerColumn(labels []string, marker string) int {
	for i, label := range labels {
		if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(marker)) {
			return i
		}
	}
	return -1
}

// =============================================================================
// CELL HELPERS
// =============================================================================

// trimCells returns a copy of the row with surrounding whitespace removed
// from every cell.
func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

// cleanLabels makes column labels usable as map keys: empty labels get a
// positional placeholder and duplicates get a numeric suffix.
func cleanLabels(labels []string) []string {
	cleaned := make([]string, len(labels))
	seen := make(map[string]int, len(labels))

	for i, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			label = fmt.Sprintf("Column_%d", i+1)
		}
		if n := seen[label]; n > 0 {
			seen[label] = n + 1
			label = fmt.Sprintf("%s_%d", label, n+1)
		}
		seen[label]++
		cleaned[i] = label
	}

	return cleaned
}

// normalizeCell trims a cell and collapses the "nan" placeholder (a
// missing-value artifact in some exports) to the empty string.
func normalizeCell(cell string) string {
	cell = strings.TrimSpace(cell)
	if strings.EqualFold(cell, "nan") {
		return ""
	}
	return cell
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

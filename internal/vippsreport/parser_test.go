package vippsreport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFindHeaderRow(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawTable
		marker  string
		wantRow int
		wantOK  bool
	}{
		{
			name: "header after metadata rows",
			raw: RawTable{
				{"Vipps rapport"},
				{"Periode", "2026-02"},
				{},
				{"Salgsdato", "Salgssted", "Transaksjonstype", "Brutto"},
				{"2026-02-01", "Ticket for artwork A", "Sale", "20"},
			},
			marker:  "Salgssted",
			wantRow: 3,
			wantOK:  true,
		},
		{
			name: "marker embedded in longer word does not match",
			raw: RawTable{
				{"Rapport"},
				{},
				{"Salgsstedet ditt: Galleri"},
				{},
				{"Salgsdato", "Salgssted", "Brutto"},
			},
			marker:  "Salgssted",
			wantRow: 4,
			wantOK:  true,
		},
		{
			name: "case-insensitive match",
			raw: RawTable{
				{"SALGSSTED", "BRUTTO"},
			},
			marker:  "Salgssted",
			wantRow: 0,
			wantOK:  true,
		},
		{
			name: "marker as distinct word inside longer cell",
			raw: RawTable{
				{"Kolonnen Salgssted finnes her"},
			},
			marker:  "Salgssted",
			wantRow: 0,
			wantOK:  true,
		},
		{
			name:   "not found",
			raw:    RawTable{{"a", "b"}, {"c"}},
			marker: "Salgssted",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := FindHeaderRow(tt.raw, tt.marker)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRow, row)
			}
		})
	}
}

func TestFindHeaderRowScanCap(t *testing.T) {
	// The marker beyond the scan window must not be found.
	raw := make(RawTable, headerScanLimit+10)
	for i := range raw {
		raw[i] = []string{"metadata"}
	}
	raw[headerScanLimit+5] = []string{"Salgssted"}

	_, ok := FindHeaderRow(raw, "Salgssted")
	assert.False(t, ok)

	// At the last row inside the window it is found.
	raw[headerScanLimit-1] = []string{"Salgssted"}
	row, ok := FindHeaderRow(raw, "Salgssted")
	require.True(t, ok)
	assert.Equal(t, headerScanLimit-1, row)
}

func TestNormalize(t *testing.T) {
	raw := RawTable{
		{"Rapport for lotteriet"},
		{" Salgsdato ", "Salgssted", "Brutto "},
		{"2026-02-01", "Ticket for artwork A", "20"},
		{},
		{"2026-02-02", "nan", "40"},
	}

	rep := Normalize(raw, 1, "Salgssted")

	assert.Equal(t, 1, rep.HeaderRow)
	assert.Equal(t, []string{"Salgsdato", "Salgssted", "Brutto"}, rep.Columns)
	require.Len(t, rep.Rows, 2)

	assert.Equal(t, "Ticket for artwork A", rep.Rows[0].Get("Salgssted"))
	assert.Equal(t, 3, rep.Rows[0].SourceRow)

	// "nan" placeholder cells are canonicalized to empty.
	assert.Equal(t, "", rep.Rows[1].Get("Salgssted"))
	assert.False(t, rep.Rows[1].Has("Salgssted"))
	assert.Equal(t, 5, rep.Rows[1].SourceRow)
}

func TestNormalizeDuplicatedHeaderRow(t *testing.T) {
	// Some exports repeat the column labels as the first data row; that
	// row must be promoted to the label row and dropped from the data.
	raw := RawTable{
		{"Metadata", "Salgssted her"},
		{"Salgsdato", "Salgssted", "Brutto"},
		{"Salgsdato", "salgssted", "Brutto"},
		{"2026-02-01", "Ticket for artwork A", "20"},
	}

	rep := Normalize(raw, 1, "Salgssted")

	require.Len(t, rep.Rows, 1)
	// The promoted row's labels replace the originals verbatim, casing
	// included; fields are keyed by the promoted labels.
	assert.Equal(t, []string{"Salgsdato", "salgssted", "Brutto"}, rep.Columns)
	assert.Equal(t, "Ticket for artwork A", rep.Rows[0].Get("salgssted"))
}

func TestCleanLabels(t *testing.T) {
	got := cleanLabels([]string{"A", "", "A", " B ", "A"})
	assert.Equal(t, []string{"A", "Column_2", "A_2", "B", "A_3"}, got)
}

func TestRequireColumns(t *testing.T) {
	rep := &Report{Columns: []string{"Salgssted", "Brutto"}}

	assert.NoError(t, rep.RequireColumns([]string{"Salgssted", "Brutto"}))

	err := rep.RequireColumns([]string{"Salgssted", "Transaksjonstype", "Brutto", "Netto"})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Transaksjonstype", "Netto"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "Transaksjonstype")
	assert.Contains(t, err.Error(), "Netto")
}

func TestParseXLSX(t *testing.T) {
	path := writeTestXLSX(t, [][]any{
		{"Vipps rapport for lotteriet"},
		{"Salgsdato", "Salgssted", "Transaksjonstype", "Brutto"},
		{"2026-02-01", "Ticket for artwork A", "Sale", "20"},
		{"2026-02-02", "Ticket for artwork B", "Sale", "40"},
	})

	rep, err := Parse(path, "Salgssted")
	require.NoError(t, err)

	assert.Equal(t, path, rep.SourceFile)
	assert.Equal(t, 1, rep.HeaderRow)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "Ticket for artwork B", rep.Rows[1].Get("Salgssted"))
	assert.Equal(t, "40", rep.Rows[1].Get("Brutto"))
}

func TestParseCSV(t *testing.T) {
	content := "Rapport\n" +
		"Salgsdato,Salgssted,Transaksjonstype,Brutto\n" +
		"2026-02-01,Ticket for artwork A,Sale,20\n"

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rep, err := Parse(path, "Salgssted")
	require.NoError(t, err)

	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Ticket for artwork A", rep.Rows[0].Get("Salgssted"))
}

func TestParseFormatError(t *testing.T) {
	path := writeTestXLSX(t, [][]any{
		{"This is some other spreadsheet"},
		{"Date", "Amount"},
		{"2026-02-01", "20"},
	})

	_, err := Parse(path, "Salgssted")
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Salgssted", formatErr.Marker)
	assert.Contains(t, err.Error(), "Salgssted")
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse("report.pdf", "Salgssted")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

// writeTestXLSX writes rows to a temporary workbook and returns its path.
func writeTestXLSX(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

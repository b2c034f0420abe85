// =============================================================================
// Kunstlotteri Report Tool - Report Errors
// =============================================================================
//
// Terminal parse errors, distinguishable by type at the pipeline boundary.
// A FormatError means the file is not the expected report at all; a
// SchemaError means the header row was found but required columns are
// missing. Both abort the run for the current file.
//
// =============================================================================

package vippsreport

import (
	"fmt"
	"strings"
)

// FormatError reports that the header row could not be located: no cell in
// the scan window contained the marker column label as a distinct word.
type FormatError struct {
	// Marker is the column label that was searched for.
	Marker string

	// Scanned is the number of rows that were scanned.
	Scanned int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf(
		"could not find the header row: no %q column in the first %d rows - is this the right report file?",
		e.Marker, e.Scanned,
	)
}

// SchemaError reports that one or more required columns are missing after
// header normalization. Every missing label is listed so the user can fix
// the export (or the column mapping) in one go.
type SchemaError struct {
	// Missing lists every required column label that was not found.
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf(
		"report is missing required column(s): %s",
		strings.Join(e.Missing, ", "),
	)
}

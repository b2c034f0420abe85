// =============================================================================
// Kunstlotteri Report Tool - Name Resolver
// =============================================================================
//
// Derives a buyer display name for a report row. The Vipps export carries
// structured name fields for logged-in buyers, but guest payments only have
// whatever the buyer typed into the payment message, and some rows have
// neither. Resolution precedence:
//
//   1. first name, with the last name appended when present
//   2. the free-text message, verbatim
//   3. the "Unknown" sentinel
//
// Cell normalization has already mapped the "nan" placeholder to the empty
// string, so presence is a plain non-empty check. The resolver always
// returns a non-empty string.
//
// =============================================================================

package lottery

import (
	"strings"

	"github.com/gavinconsulting/lotteri/internal/config"
	"github.com/gavinconsulting/lotteri/internal/vippsreport"
)

// UnknownName is the sentinel used when no name source is available.
const UnknownName = "Unknown"

// ResolveName derives the display name for one report row.
func ResolveName(rec vippsreport.Record, cols config.Columns) string {
	first := rec.Get(cols.FirstName)
	if first != "" {
		if last := rec.Get(cols.LastName); last != "" {
			return first + " " + last
		}
		return first
	}

	if msg := rec.Get(cols.Message); msg != "" {
		return msg
	}

	return UnknownName
}

// FirstToken reduces a resolved name to its first whitespace-delimited
// token, for the first-name-only display mode.
func FirstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return UnknownName
	}
	return fields[0]
}

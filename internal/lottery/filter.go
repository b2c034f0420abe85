// =============================================================================
// Kunstlotteri Report Tool - Row Filter & Tagger
// =============================================================================
//
// Selects the report rows that represent raffle ticket sales and tags each
// with its artwork letter. A row survives when:
//
//   1. its transaction type, trimmed and lowercased, equals the configured
//      sale type, and
//   2. its point-of-sale text contains the ticket phrase
//      (case-insensitive), and
//   3. a single artwork letter can be extracted right after the phrase.
//
// Rows that pass (2) but fail (3) come from inconsistently formatted sale
// points; they are dropped and counted, never zero-filled.
//
// =============================================================================

package lottery

import (
	"regexp"
	"strings"

	"github.com/gavinconsulting/lotteri/internal/config"
	"github.com/gavinconsulting/lotteri/internal/types"
	"github.com/gavinconsulting/lotteri/internal/vippsreport"
)

// FilterStats counts what happened to the report rows during filtering.
type FilterStats struct {
	// RowsTotal is the number of data rows examined.
	RowsTotal int

	// SaleRows is the number of rows whose transaction type matched.
	SaleRows int

	// TicketRows is the number of rows that became TicketRows.
	TicketRows int

	// DroppedNoLetter is the number of rows that contained the ticket
	// phrase but no extractable artwork letter.
	DroppedNoLetter int
}

// CollectTicketRows filters and tags the normalized report, resolving a
// display name for every surviving row. Rows come back in report order.
func CollectTicketRows(rep *vippsreport.Report, cfg *config.Config) ([]types.TicketRow, FilterStats) {
	var (
		rows  []types.TicketRow
		stats FilterStats
	)

	cols := cfg.Columns
	saleType := strings.ToLower(strings.TrimSpace(cfg.SaleTransactionType))
	phraseLower := strings.ToLower(cfg.TicketPhrase)
	letterRe := ticketPattern(cfg.TicketPhrase)

	for _, rec := range rep.Rows {
		stats.RowsTotal++

		txType := strings.ToLower(strings.TrimSpace(rec.Get(cols.TransactionType)))
		if txType != saleType {
			continue
		}
		stats.SaleRows++

		location := rec.Get(cols.SaleLocation)
		if !strings.Contains(strings.ToLower(location), phraseLower) {
			continue
		}

		m := letterRe.FindStringSubmatch(location)
		if m == nil {
			stats.DroppedNoLetter++
			continue
		}

		name := ResolveName(rec, cols)
		if cfg.NameDisplayMode == config.NameFirst {
			name = FirstToken(name)
		}

		rows = append(rows, types.TicketRow{
			ArtworkID: strings.ToUpper(m[1]),
			Name:      name,
			GrossOre:  types.ParseOre(rec.Get(cols.GrossAmount)),
			SaleDate:  rec.Get(cols.SaleDate),
			Location:  location,
			Message:   rec.Get(cols.Message),
			SourceRow: rec.SourceRow,
		})
		stats.TicketRows++
	}

	return rows, stats
}

// ticketPattern builds the case-insensitive pattern that extracts the
// artwork letter: the phrase words, tolerating variable whitespace, then
// exactly one letter.
func ticketPattern(phrase string) *regexp.Regexp {
	words := strings.Fields(phrase)
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, `\s*`) + `\s*([A-Za-z])`)
}

// =============================================================================
// Kunstlotteri Report Tool - Shared Types
// =============================================================================
//
// This package contains the data model shared across the pipeline stages to
// avoid import cycles. Types defined here are used by:
//   - lottery (filtering, name resolution, aggregation)
//   - export (wheel lists, results workbook)
//   - cmd (summary rendering)
//
// Every stage produces a new value of one of these types and never mutates
// its input, so a Result can be re-rendered any number of times.
//
// =============================================================================

package types

import "time"

// =============================================================================
// TICKET ROWS
// =============================================================================

// TicketRow is a single sale row that survived filtering: its transaction
// type is a sale and its point-of-sale text matched the ticket phrase.
type TicketRow struct {
	// ArtworkID is the single uppercase letter extracted from the
	// point-of-sale text. Rows where extraction fails never become a
	// TicketRow, so this is always exactly one letter.
	ArtworkID string

	// Name is the resolved buyer display name. Never empty; falls back
	// to the "Unknown" sentinel.
	Name string

	// GrossOre is the gross payment amount in integer minor currency
	// units (øre). Unparseable amounts are coerced to 0.
	GrossOre int64

	// SaleDate is the raw sale date text, if the report had the column.
	SaleDate string

	// Location is the original point-of-sale text the row matched on.
	Location string

	// Message is the free-text message attached to the payment, if any.
	Message string

	// SourceRow is the 1-indexed row number in the original report,
	// counted from the top of the raw grid. Used in the debug view.
	SourceRow int
}

// =============================================================================
// AGGREGATES
// =============================================================================

// AggregateEntry is the summed position of one buyer for one artwork.
// The grouping key is the (ArtworkID, Name) pair; rows are merged before
// any rounding so that split purchases round as a single total.
type AggregateEntry struct {
	ArtworkID string
	Name      string

	// GrossOre is the summed gross amount in øre. Can be negative when
	// refunds net below zero.
	GrossOre int64

	// RawTickets is GrossOre divided by the unit price, as a real number.
	RawTickets float64

	// Tickets is the rounded ticket count per the configured rounding
	// policy. Unclamped: refunds can drive it negative.
	Tickets int

	// NonExact marks totals that are not an exact multiple of the unit
	// price.
	NonExact bool
}

// ClampedTickets returns the ticket count floored at zero. All buyer-facing
// output (wheel lists, totals, top-N tables) uses the clamped value; the raw
// Tickets value stays available for audit.
func (e AggregateEntry) ClampedTickets() int {
	if e.Tickets < 0 {
		return 0
	}
	return e.Tickets
}

// ArtworkSummary holds the aggregated entries and headline metrics for one
// artwork.
type ArtworkSummary struct {
	ArtworkID string

	// Entries are sorted by clamped ticket count descending, then by
	// name ascending. The order is stable across runs.
	Entries []AggregateEntry

	// Buyers is the number of entries with a clamped ticket count > 0.
	Buyers int

	// TotalTickets is the sum of clamped ticket counts.
	TotalTickets int

	// TotalGrossOre is the sum of entry gross amounts, refunds included.
	TotalGrossOre int64
}

// TopEntries returns the first n entries with a clamped ticket count > 0,
// in presentation order.
func (s ArtworkSummary) TopEntries(n int) []AggregateEntry {
	top := make([]AggregateEntry, 0, n)
	for _, e := range s.Entries {
		if e.ClampedTickets() <= 0 {
			continue
		}
		top = append(top, e)
		if len(top) == n {
			break
		}
	}
	return top
}

// =============================================================================
// PIPELINE RESULT
// =============================================================================

// Result is the complete outcome of one pipeline pass over one report file.
type Result struct {
	// SourceFile is the report file that was processed.
	SourceFile string

	// HeaderRow is the 0-indexed row of the raw grid where the column
	// labels were found.
	HeaderRow int

	// TicketRows are the filtered, tagged and name-resolved rows, in
	// report order. Kept for the debug view.
	TicketRows []TicketRow

	// Artworks are the per-artwork summaries, sorted by artwork letter.
	Artworks []ArtworkSummary

	// NonExact lists every aggregate whose total is not an exact multiple
	// of the unit price, sorted by artwork then name.
	NonExact []AggregateEntry

	// Stats are the processing statistics for the run.
	Stats Stats
}

// Artwork returns the summary for one artwork letter, or nil.
func (r *Result) Artwork(id string) *ArtworkSummary {
	for i := range r.Artworks {
		if r.Artworks[i].ArtworkID == id {
			return &r.Artworks[i]
		}
	}
	return nil
}

// Stats contains processing statistics for a pipeline run.
type Stats struct {
	// RowsTotal is the number of data rows in the normalized report.
	RowsTotal int

	// SaleRows is the number of rows whose transaction type matched the
	// sale type.
	SaleRows int

	// TicketRows is the number of rows that survived both the filter and
	// letter extraction.
	TicketRows int

	// DroppedNoLetter counts rows that matched the ticket phrase but
	// failed letter extraction and were dropped.
	DroppedNoLetter int

	// ArtworkCount is the number of distinct artwork letters seen.
	ArtworkCount int

	// NonExactCount is the number of aggregates flagged as non-exact
	// multiples of the unit price.
	NonExactCount int

	// Elapsed is the wall-clock time for the pipeline pass.
	Elapsed time.Duration
}

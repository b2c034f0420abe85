// =============================================================================
// Kunstlotteri Report Tool - Aggregator
// =============================================================================
//
// Sums ticket rows per (artwork, buyer) pair and converts the summed gross
// amounts to integer ticket counts.
//
// ORDER OF OPERATIONS:
//   Rows are summed before any rounding. A buyer who pays 15 + 15 at a
//   unit price of 20 owns floor(30/20) = 1 ticket; rounding the purchases
//   separately would give 0. Grouping first is the whole point.
//
// ROUNDING:
//   Floor mode uses integer floor division on øre, so -10/20 rounds to -1
//   the same way the raw real-number floor would. Nearest mode uses
//   math.Round: halves round away from zero (2.5 -> 3, -2.5 -> -3).
//
// The exact-multiple flag is an integer modulo on øre. Amounts never touch
// floating point on the way here, so no epsilon tolerance is involved.
//
// =============================================================================

package lottery

import (
	"math"
	"sort"

	"github.com/gavinconsulting/lotteri/internal/config"
	"github.com/gavinconsulting/lotteri/internal/types"
)

// groupKey identifies one (artwork, buyer) aggregation bucket.
type groupKey struct {
	artwork string
	name    string
}

// Aggregate groups ticket rows by (artwork, resolved name), sums gross
// amounts and computes ticket counts under the configured rounding mode.
//
// It returns per-artwork summaries sorted by artwork letter, with entries
// sorted by clamped ticket count descending then name ascending, plus the
// global list of non-exact-multiple entries sorted by artwork then name.
func Aggregate(rows []types.TicketRow, cfg *config.Config) ([]types.ArtworkSummary, []types.AggregateEntry, error) {
	priceOre := cfg.UnitPriceOre()
	if priceOre <= 0 {
		return nil, nil, &ConfigError{
			Setting: "unit_price",
			Reason:  "must be a positive number",
		}
	}

	// Sum gross per (artwork, name) pair.
	sums := make(map[groupKey]int64)
	for _, row := range rows {
		sums[groupKey{row.ArtworkID, row.Name}] += row.GrossOre
	}

	// Build entries per artwork.
	byArtwork := make(map[string][]types.AggregateEntry)
	var nonExact []types.AggregateEntry

	for key, gross := range sums {
		entry := types.AggregateEntry{
			ArtworkID:  key.artwork,
			Name:       key.name,
			GrossOre:   gross,
			RawTickets: float64(gross) / float64(priceOre),
			Tickets:    ticketCount(gross, priceOre, cfg.RoundingMode),
			NonExact:   gross%priceOre != 0,
		}
		byArtwork[key.artwork] = append(byArtwork[key.artwork], entry)
		if entry.NonExact {
			nonExact = append(nonExact, entry)
		}
	}

	// Assemble summaries in artwork order.
	artworkIDs := make([]string, 0, len(byArtwork))
	for id := range byArtwork {
		artworkIDs = append(artworkIDs, id)
	}
	sort.Strings(artworkIDs)

	summaries := make([]types.ArtworkSummary, 0, len(artworkIDs))
	for _, id := range artworkIDs {
		entries := byArtwork[id]
		sortEntries(entries)

		summary := types.ArtworkSummary{
			ArtworkID: id,
			Entries:   entries,
		}
		for _, e := range entries {
			if c := e.ClampedTickets(); c > 0 {
				summary.Buyers++
				summary.TotalTickets += c
			}
			summary.TotalGrossOre += e.GrossOre
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(nonExact, func(i, j int) bool {
		if nonExact[i].ArtworkID != nonExact[j].ArtworkID {
			return nonExact[i].ArtworkID < nonExact[j].ArtworkID
		}
		return nonExact[i].Name < nonExact[j].Name
	})

	return summaries, nonExact, nil
}

// ticketCount converts a summed gross amount to an integer ticket count.
func ticketCount(grossOre, priceOre int64, mode string) int {
	if mode == config.RoundNearest {
		return int(math.Round(float64(grossOre) / float64(priceOre)))
	}
	return floorDiv(grossOre, priceOre)
}

// floorDiv is integer division rounding toward negative infinity, matching
// the real-number floor for negative totals.
func floorDiv(a, b int64) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return int(q)
}

// sortEntries orders entries for presentation: clamped ticket count
// descending, then name ascending. The sort is stable and locale-naive, so
// repeated runs produce byte-identical output.
func sortEntries(entries []types.AggregateEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ci, cj := entries[i].ClampedTickets(), entries[j].ClampedTickets()
		if ci != cj {
			return ci > cj
		}
		return entries[i].Name < entries[j].Name
	})
}

package lottery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavinconsulting/lotteri/internal/config"
	"github.com/gavinconsulting/lotteri/internal/types"
)

func ticket(artwork, name string, grossOre int64) types.TicketRow {
	return types.TicketRow{ArtworkID: artwork, Name: name, GrossOre: grossOre}
}

func TestAggregateGroupsBeforeRounding(t *testing.T) {
	cfg := config.DefaultConfig() // unit price 20, floor

	// Two 15 kr purchases by the same buyer: summed first, they are worth
	// one ticket; floored separately they would be worth zero.
	rows := []types.TicketRow{
		ticket("A", "Anna", 1500),
		ticket("A", "Anna", 1500),
	}

	artworks, nonExact, err := Aggregate(rows, cfg)
	require.NoError(t, err)
	require.Len(t, artworks, 1)
	require.Len(t, artworks[0].Entries, 1)

	entry := artworks[0].Entries[0]
	assert.Equal(t, int64(3000), entry.GrossOre)
	assert.Equal(t, 1, entry.Tickets)
	assert.True(t, entry.NonExact)
	require.Len(t, nonExact, 1)
}

func TestAggregateNonExactMultiple(t *testing.T) {
	cfg := config.DefaultConfig()

	artworks, nonExact, err := Aggregate([]types.TicketRow{ticket("A", "Anna", 4500)}, cfg)
	require.NoError(t, err)

	entry := artworks[0].Entries[0]
	assert.InDelta(t, 2.25, entry.RawTickets, 1e-9)
	assert.Equal(t, 2, entry.Tickets)
	assert.True(t, entry.NonExact)
	require.Len(t, nonExact, 1)
	assert.Equal(t, "Anna", nonExact[0].Name)
}

func TestAggregateExactMultipleNotFlagged(t *testing.T) {
	cfg := config.DefaultConfig()

	artworks, nonExact, err := Aggregate([]types.TicketRow{ticket("A", "Anna", 4000)}, cfg)
	require.NoError(t, err)

	entry := artworks[0].Entries[0]
	assert.Equal(t, 2, entry.Tickets)
	assert.False(t, entry.NonExact)
	assert.Empty(t, nonExact)
}

func TestAggregateNegativeTotalClamped(t *testing.T) {
	cfg := config.DefaultConfig()

	// A refund netting below zero: raw count -1, clamped 0, excluded from
	// buyer/ticket totals but still present in the entries for audit.
	rows := []types.TicketRow{
		ticket("A", "Anna", 2000),
		ticket("A", "Anna", -4000),
		ticket("A", "Ola", 4000),
	}

	artworks, _, err := Aggregate(rows, cfg)
	require.NoError(t, err)
	require.Len(t, artworks, 1)
	summary := artworks[0]

	require.Len(t, summary.Entries, 2)
	assert.Equal(t, 1, summary.Buyers)
	assert.Equal(t, 2, summary.TotalTickets)
	// Gross total still includes the negative entry.
	assert.Equal(t, int64(2000), summary.TotalGrossOre)

	var anna types.AggregateEntry
	for _, e := range summary.Entries {
		if e.Name == "Anna" {
			anna = e
		}
	}
	assert.Equal(t, -1, anna.Tickets)
	assert.Equal(t, 0, anna.ClampedTickets())
	assert.Empty(t, summary.TopEntries(10)[1:], "only Ola makes the top table")
}

func TestAggregateFloorOfNegativeFraction(t *testing.T) {
	cfg := config.DefaultConfig()

	// floor(-10/20) = -1, mirroring the real-number floor.
	artworks, _, err := Aggregate([]types.TicketRow{ticket("A", "Anna", -1000)}, cfg)
	require.NoError(t, err)
	assert.Equal(t, -1, artworks[0].Entries[0].Tickets)
}

func TestAggregateNearestRounding(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RoundingMode = config.RoundNearest

	tests := []struct {
		name     string
		grossOre int64
		want     int
	}{
		{name: "half rounds up", grossOre: 3000, want: 2},      // 1.5
		{name: "half below one rounds up", grossOre: 1000, want: 1}, // 0.5
		{name: "below half rounds down", grossOre: 4500, want: 2},   // 2.25
		{name: "above half rounds up", grossOre: 3500, want: 2},     // 1.75
		{name: "negative half away from zero", grossOre: -1000, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artworks, _, err := Aggregate([]types.TicketRow{ticket("A", "Anna", tt.grossOre)}, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, artworks[0].Entries[0].Tickets)
		})
	}
}

func TestAggregateOrdering(t *testing.T) {
	cfg := config.DefaultConfig()

	rows := []types.TicketRow{
		ticket("B", "Zara", 2000),
		ticket("A", "Ola", 4000),
		ticket("A", "Kari", 8000),
		ticket("A", "Anna", 4000),
		ticket("A", "Refundert", -2000),
	}

	artworks, _, err := Aggregate(rows, cfg)
	require.NoError(t, err)
	require.Len(t, artworks, 2)

	// Artworks sorted by letter.
	assert.Equal(t, "A", artworks[0].ArtworkID)
	assert.Equal(t, "B", artworks[1].ArtworkID)

	// Entries: clamped count descending, then name ascending.
	names := make([]string, 0, len(artworks[0].Entries))
	for _, e := range artworks[0].Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Kari", "Anna", "Ola", "Refundert"}, names)
}

func TestAggregateFloorSumProperty(t *testing.T) {
	cfg := config.DefaultConfig()

	rows := []types.TicketRow{
		ticket("A", "Anna", 4500),
		ticket("A", "Ola", 1900),
		ticket("B", "Kari", 6100),
		ticket("B", "Per", 2000),
		ticket("C", "Nils", 700),
	}

	artworks, _, err := Aggregate(rows, cfg)
	require.NoError(t, err)

	var ticketSum int
	var rawSum float64
	for _, s := range artworks {
		for _, e := range s.Entries {
			ticketSum += e.Tickets
			rawSum += e.RawTickets

			// Per group the floor loses strictly less than one ticket.
			assert.LessOrEqual(t, float64(e.Tickets), e.RawTickets)
			assert.Less(t, e.RawTickets-float64(e.Tickets), 1.0)
		}
	}
	assert.LessOrEqual(t, float64(ticketSum), rawSum)
}

func TestAggregateUnitPriceGuard(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UnitPrice = 0

	_, _, err := Aggregate([]types.TicketRow{ticket("A", "Anna", 2000)}, cfg)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "unit_price", cfgErr.Setting)
}

func TestAggregateEmptyInput(t *testing.T) {
	artworks, nonExact, err := Aggregate(nil, config.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, artworks)
	assert.Empty(t, nonExact)
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateEntryClampedTickets(t *testing.T) {
	assert.Equal(t, 3, AggregateEntry{Tickets: 3}.ClampedTickets())
	assert.Equal(t, 0, AggregateEntry{Tickets: 0}.ClampedTickets())
	assert.Equal(t, 0, AggregateEntry{Tickets: -1}.ClampedTickets())
}

func TestArtworkSummaryTopEntries(t *testing.T) {
	summary := ArtworkSummary{
		ArtworkID: "A",
		Entries: []AggregateEntry{
			{Name: "Kari", Tickets: 5},
			{Name: "Ola", Tickets: 2},
			{Name: "Per", Tickets: 1},
			{Name: "Refundert", Tickets: -1},
		},
	}

	top := summary.TopEntries(2)
	assert.Len(t, top, 2)
	assert.Equal(t, "Kari", top[0].Name)
	assert.Equal(t, "Ola", top[1].Name)

	// Zero-ticket entries never make the list even when n is larger.
	all := summary.TopEntries(10)
	assert.Len(t, all, 3)
	for _, e := range all {
		assert.Greater(t, e.ClampedTickets(), 0)
	}
}

func TestResultArtwork(t *testing.T) {
	res := &Result{Artworks: []ArtworkSummary{{ArtworkID: "A"}, {ArtworkID: "B"}}}

	assert.NotNil(t, res.Artwork("B"))
	assert.Equal(t, "B", res.Artwork("B").ArtworkID)
	assert.Nil(t, res.Artwork("X"))
}

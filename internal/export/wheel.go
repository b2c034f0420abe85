// =============================================================================
// Kunstlotteri Report Tool - Wheel List Export
// =============================================================================
//
// Builds the per-artwork drawing lists for the external randomizer
// (Wheel of Names): each buyer's name repeated once per ticket, newline
// separated, in presentation order. Entries with a clamped ticket count of
// zero never appear, so refund-netted buyers are excluded from the draw.
//
// =============================================================================

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gavinconsulting/lotteri/internal/types"
	"github.com/gavinconsulting/lotteri/pkg/utils"
)

// WheelURL is the external random-drawing tool the lists are pasted into.
const WheelURL = "https://wheelofnames.com/"

// BuildWheelList renders the drawing list for one artwork. Returns the
// empty string when no buyer holds a ticket.
func BuildWheelList(summary types.ArtworkSummary) string {
	var names []string
	for _, e := range summary.Entries {
		count := e.ClampedTickets()
		for i := 0; i < count; i++ {
			names = append(names, e.Name)
		}
	}
	return strings.Join(names, "\n")
}

// WriteWheelLists writes one list file per artwork into dir, using the
// configured file-name format ({artwork}, {timestamp} and {uuid}
// placeholders). Artworks with an empty list are skipped. Returns the
// written paths keyed by artwork letter.
func WriteWheelLists(dir, nameFormat string, res *types.Result) (map[string]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}

	written := make(map[string]string)
	for _, summary := range res.Artworks {
		list := BuildWheelList(summary)
		if list == "" {
			continue
		}

		name := utils.GenerateOutputFileName(nameFormat, map[string]string{
			"artwork": summary.ArtworkID,
		})
		path := filepath.Join(dir, name)

		if err := os.WriteFile(path, []byte(list+"\n"), 0644); err != nil {
			return nil, fmt.Errorf("failed to write wheel list for artwork %s: %w", summary.ArtworkID, err)
		}
		written[summary.ArtworkID] = path
	}

	return written, nil
}

// =============================================================================
// Kunstlotteri Report Tool - Pipeline
// =============================================================================
//
// Orchestrates one full pass over one report file:
//
//   1. Read the raw grid and locate the header row (FormatError on miss)
//   2. Normalize the report and check required columns (SchemaError)
//   3. Filter and tag ticket rows, resolving names
//   4. Aggregate per (artwork, buyer) and compute ticket counts
//
// The pass is synchronous and all-or-nothing: on any terminal error the
// caller gets the error and no Result, never a partial aggregate. The only
// non-terminal outcome is ErrNoTicketRows, which comes back together with a
// Result that carries the (empty) row set and the run statistics.
//
// =============================================================================

package lottery

import (
	"log/slog"
	"time"

	"github.com/gavinconsulting/lotteri/internal/config"
	"github.com/gavinconsulting/lotteri/internal/types"
	"github.com/gavinconsulting/lotteri/internal/vippsreport"
)

// Pipeline runs the ingestion-and-aggregation pipeline for report files.
// It holds no per-file state and can be reused across files.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Pipeline. A nil logger falls back to slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run processes one report file end to end.
//
// Terminal errors (*vippsreport.FormatError, *vippsreport.SchemaError,
// *ConfigError, I/O failures) return a nil Result. ErrNoTicketRows returns
// alongside a Result whose aggregates are empty.
func (p *Pipeline) Run(path string) (*types.Result, error) {
	start := time.Now()

	rep, err := vippsreport.Parse(path, p.cfg.HeaderMarker)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("located header row",
		"file", path,
		"row", rep.HeaderRow,
		"columns", len(rep.Columns),
	)

	if err := rep.RequireColumns(p.cfg.Columns.Required()); err != nil {
		return nil, err
	}

	rows, fstats := CollectTicketRows(rep, p.cfg)
	p.logger.Debug("filtered ticket rows",
		"total", fstats.RowsTotal,
		"sales", fstats.SaleRows,
		"tickets", fstats.TicketRows,
		"dropped_no_letter", fstats.DroppedNoLetter,
	)

	res := &types.Result{
		SourceFile: path,
		HeaderRow:  rep.HeaderRow,
		TicketRows: rows,
		Stats: types.Stats{
			RowsTotal:       fstats.RowsTotal,
			SaleRows:        fstats.SaleRows,
			TicketRows:      fstats.TicketRows,
			DroppedNoLetter: fstats.DroppedNoLetter,
		},
	}

	if len(rows) == 0 {
		res.Stats.Elapsed = time.Since(start)
		return res, ErrNoTicketRows
	}

	artworks, nonExact, err := Aggregate(rows, p.cfg)
	if err != nil {
		return nil, err
	}

	res.Artworks = artworks
	res.NonExact = nonExact
	res.Stats.ArtworkCount = len(artworks)
	res.Stats.NonExactCount = len(nonExact)
	res.Stats.Elapsed = time.Since(start)

	p.logger.Debug("aggregation complete",
		"artworks", len(artworks),
		"non_exact", len(nonExact),
		"elapsed", res.Stats.Elapsed,
	)

	return res, nil
}

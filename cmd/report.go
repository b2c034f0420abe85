// =============================================================================
// Kunstlotteri Report Tool - Report Command
// =============================================================================
//
// This file defines the 'report' command, which runs the full pipeline on
// one report file and renders the review output.
//
// COMMAND USAGE:
//   lotteri report --file <report.xlsx> [flags]
//
// FLAGS:
//   --file        : Path to the report file to process (required)
//   --unit-price  : Price of one ticket in kroner (overrides config)
//   --rounding    : Rounding mode: floor or nearest (overrides config)
//   --names       : Name display: full or first (overrides config)
//   --top         : Number of buyers in the top table (overrides config)
//   --out         : Output directory for export artifacts (overrides config)
//   --no-export   : Render to stdout only, write nothing to disk
//   --debug       : Also print the interpreted row basis per artwork
//
// PIPELINE:
//   1. Load configuration, apply flag overrides
//   2. Run the ingestion-and-aggregation pipeline
//   3. Render summary, per-artwork tables and the deviation table
//   4. Write wheel lists and the results workbook
//
// All terminal errors surface as a single descriptive message; no partial
// aggregate is ever rendered. Zero ticket rows is a warning, not an error.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gavinconsulting/lotteri/internal/config"
	"github.com/gavinconsulting/lotteri/internal/export"
	"github.com/gavinconsulting/lotteri/internal/lottery"
	"github.com/gavinconsulting/lotteri/internal/types"
)

// Command flags.
var (
	reportFile   string
	unitPrice    float64
	roundingFlag string
	namesFlag    string
	topFlag      int
	outDir       string
	noExport     bool
	debugRows    bool
)

// reportCmd represents the 'report' command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Process a Vipps report and render the raffle results",
	Long: `The report command runs the full pipeline on one Vipps settlement export:
header location, normalization, ticket filtering, name resolution and
per-artwork aggregation.

On success it prints the per-artwork metrics, the top buyers table and, when
any totals do not divide evenly by the ticket price, a deviation table. The
per-artwork drawing lists and a results workbook are written to the output
directory unless --no-export is given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFile, "file", "", "Path to the report file (.xlsx or .csv)")
	reportCmd.Flags().Float64Var(&unitPrice, "unit-price", 0, "Price of one ticket in kroner")
	reportCmd.Flags().StringVar(&roundingFlag, "rounding", "", "Rounding mode: floor or nearest")
	reportCmd.Flags().StringVar(&namesFlag, "names", "", "Name display: full or first")
	reportCmd.Flags().IntVar(&topFlag, "top", 0, "Number of buyers in the top table")
	reportCmd.Flags().StringVar(&outDir, "out", "", "Output directory for export artifacts")
	reportCmd.Flags().BoolVar(&noExport, "no-export", false, "Render to stdout only, write nothing to disk")
	reportCmd.Flags().BoolVar(&debugRows, "debug", false, "Print the interpreted row basis per artwork")

	_ = reportCmd.MarkFlagRequired("file")
}

// runReport orchestrates one pipeline pass plus rendering and export.
func runReport(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}

	logger := newLogger(cfg)
	pipeline := lottery.New(cfg, logger)

	res, err := pipeline.Run(reportFile)
	if errors.Is(err, lottery.ErrNoTicketRows) {
		fmt.Printf("Warning: no ticket rows found (transaction type %q with %q in the point of sale).\n",
			cfg.SaleTransactionType, cfg.TicketPhrase)
		fmt.Println("Nothing to aggregate; try another report file.")
		return nil
	}
	if err != nil {
		return err
	}

	renderResult(res, cfg)

	if debugRows {
		renderDebug(res)
	}

	if !noExport {
		if err := writeArtifacts(res, cfg); err != nil {
			return err
		}
	}

	return nil
}

// applyOverrides folds explicitly set command-line flags into the loaded
// configuration and re-validates it.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("unit-price") {
		cfg.UnitPrice = unitPrice
	}
	if cmd.Flags().Changed("rounding") {
		cfg.RoundingMode = roundingFlag
	}
	if cmd.Flags().Changed("names") {
		switch namesFlag {
		case "full":
			cfg.NameDisplayMode = config.NameFull
		case "first":
			cfg.NameDisplayMode = config.NameFirst
		default:
			cfg.NameDisplayMode = namesFlag
		}
	}
	if cmd.Flags().Changed("top") {
		cfg.TopN = topFlag
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.Dir = outDir
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// =============================================================================
// RENDERING
// =============================================================================

// renderResult prints the review output for a completed run.
func renderResult(res *types.Result, cfg *config.Config) {
	fmt.Printf("Found %d ticket rows across %d artworks (header at row %d).\n\n",
		res.Stats.TicketRows, res.Stats.ArtworkCount, res.HeaderRow+1)

	if res.Stats.DroppedNoLetter > 0 {
		fmt.Printf("Note: %d row(s) matched the ticket phrase but had no artwork letter and were dropped.\n\n",
			res.Stats.DroppedNoLetter)
	}

	renderNonExact(res, cfg)

	for _, summary := range res.Artworks {
		fmt.Printf("=== Artwork %s ===\n", summary.ArtworkID)
		fmt.Printf("Buyers:     %d\n", summary.Buyers)
		fmt.Printf("Tickets:    %d\n", summary.TotalTickets)
		fmt.Printf("Gross (kr): %s\n", types.FormatKroner(summary.TotalGrossOre))

		top := summary.TopEntries(cfg.TopN)
		if len(top) == 0 {
			fmt.Println("No buyers with tickets > 0 for this artwork (net 0).")
			fmt.Println()
			continue
		}

		fmt.Printf("Top %d buyers (by ticket count):\n", len(top))
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Name", "Tickets", "Paid (kr)"})
		for _, e := range top {
			table.Append([]string{
				e.Name,
				strconv.Itoa(e.ClampedTickets()),
				types.FormatKroner(e.GrossOre),
			})
		}
		table.Render()
		fmt.Println()
	}

	fmt.Printf("Paste each drawing list into %s\n\n", export.WheelURL)
}

// renderNonExact prints the deviation table when any aggregate total does
// not divide evenly by the unit price. The computation has already applied
// the configured rounding; this is informational.
func renderNonExact(res *types.Result, cfg *config.Config) {
	if len(res.NonExact) == 0 {
		return
	}

	fmt.Printf("Warning: %d buyer total(s) do not divide evenly by the ticket price (%s kr); %s is applied.\n",
		len(res.NonExact), trimFloat(cfg.UnitPrice), roundingLabel(cfg.RoundingMode))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Artwork", "Name", "Paid (kr)", "Paid / unit price"})
	for _, e := range res.NonExact {
		table.Append([]string{
			e.ArtworkID,
			e.Name,
			types.FormatKroner(e.GrossOre),
			fmt.Sprintf("%.2f", e.RawTickets),
		})
	}
	table.Render()
	fmt.Println()
}

// renderDebug prints the interpreted row basis per artwork, including rows
// and totals that are excluded from the drawing lists, for manual checking
// against the source report.
func renderDebug(res *types.Result) {
	fmt.Println("=== Debug: interpreted ticket rows ===")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Row", "Artwork", "Date", "Name", "Paid (kr)", "Point of sale", "Message"})
	for _, r := range res.TicketRows {
		table.Append([]string{
			strconv.Itoa(r.SourceRow),
			r.ArtworkID,
			r.SaleDate,
			r.Name,
			types.FormatKroner(r.GrossOre),
			r.Location,
			r.Message,
		})
	}
	table.Render()

	fmt.Println("=== Debug: raw totals (unclamped) ===")
	totals := tablewriter.NewWriter(os.Stdout)
	totals.SetHeader([]string{"Artwork", "Name", "Gross (kr)", "Raw tickets", "Tickets"})
	for _, s := range res.Artworks {
		for _, e := range s.Entries {
			totals.Append([]string{
				e.ArtworkID,
				e.Name,
				types.FormatKroner(e.GrossOre),
				fmt.Sprintf("%.2f", e.RawTickets),
				strconv.Itoa(e.Tickets),
			})
		}
	}
	totals.Render()
	fmt.Println()
}

// =============================================================================
// EXPORT
// =============================================================================

// writeArtifacts writes the wheel lists and the results workbook.
func writeArtifacts(res *types.Result, cfg *config.Config) error {
	lists, err := export.WriteWheelLists(cfg.Output.Dir, cfg.Output.WheelListFormat, res)
	if err != nil {
		return err
	}
	for _, summary := range res.Artworks {
		if path, ok := lists[summary.ArtworkID]; ok {
			fmt.Printf("  ✓ drawing list for artwork %s -> %s\n", summary.ArtworkID, path)
		}
	}

	workbook, err := export.WriteWorkbook(cfg.Output.Dir, cfg.Output.WorkbookFormat, res)
	if err != nil {
		return err
	}
	fmt.Printf("  ✓ results workbook -> %s\n", workbook)

	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// trimFloat renders a price without trailing zeros: 20 -> "20", 2.5 -> "2.5".
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundingLabel describes a rounding mode in user-facing text.
func roundingLabel(mode string) string {
	if mode == config.RoundNearest {
		return "rounding to nearest"
	}
	return "rounding down"
}

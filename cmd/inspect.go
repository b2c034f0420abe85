// =============================================================================
// Kunstlotteri Report Tool - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which checks a report file
// without aggregating anything: it locates the header row, normalizes the
// columns and reports the schema. Useful when a report fails to process and
// the user wants to see what the tool made of the file.
//
// COMMAND USAGE:
//   lotteri inspect --file <report.xlsx>
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gavinconsulting/lotteri/internal/vippsreport"
)

// inspectFile is the path to the report file to inspect.
var inspectFile string

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Locate the header row and check columns without aggregating",
	Long: `The inspect command parses a report file the same way 'report' does, then
stops: it prints where the header row was found, which columns the report
has after normalization, and whether the required columns are present.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Path to the report file (.xlsx or .csv)")
	_ = inspectCmd.MarkFlagRequired("file")
}

// runInspect parses and describes the report file.
func runInspect() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rep, err := vippsreport.Parse(inspectFile, cfg.HeaderMarker)
	if err != nil {
		return err
	}

	fmt.Printf("Header row:  %d (marker %q)\n", rep.HeaderRow+1, cfg.HeaderMarker)
	fmt.Printf("Data rows:   %d\n", len(rep.Rows))
	fmt.Printf("Columns:     %d\n", len(rep.Columns))
	for _, c := range rep.Columns {
		fmt.Printf("  - %s\n", c)
	}

	if err := rep.RequireColumns(cfg.Columns.Required()); err != nil {
		return err
	}

	fmt.Println("All required columns present.")
	return nil
}

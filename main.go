// =============================================================================
// Kunstlotteri Report Tool - Main Entry Point
// =============================================================================
//
// CLI tool that turns a Vipps settlement report into raffle drawing lists
// and review tables for the art lottery.
//
// USAGE:
//   lotteri report --file report.xlsx   - Run the full pipeline on a report
//   lotteri inspect --file report.xlsx  - Locate the header row and check columns
//   lotteri version                     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core pipeline logic (not for external import)
//   - pkg/           : Shared utilities
//   - configs/       : Example YAML configurations
//
// =============================================================================

package main

import (
	"github.com/gavinconsulting/lotteri/cmd"
)

func main() {
	cmd.Execute()
}

// =============================================================================
// Kunstlotteri Report Tool - Pipeline Errors
// =============================================================================

package lottery

import (
	"errors"
	"fmt"
)

// ErrNoTicketRows signals that filtering left zero ticket rows. It is a
// warning-level condition, not a failure: the report parsed fine, it just
// contains no raffle ticket sales. Callers should render a warning and keep
// the application usable for another file.
var ErrNoTicketRows = errors.New("no ticket rows found after filtering")

// ConfigError reports a configuration value the computation refuses to run
// with. Configuration loading validates the same constraints up front, so
// reaching one of these at aggregation time means a caller bypassed the
// config layer.
type ConfigError struct {
	// Setting is the configuration key, e.g. "unit_price".
	Setting string

	// Reason describes the constraint that was violated.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Setting, e.Reason)
}

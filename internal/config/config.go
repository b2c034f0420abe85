// =============================================================================
// Kunstlotteri Report Tool - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. All of the
// matching strings the pipeline uses (header marker, sale transaction type,
// ticket phrase, column labels) live here, so a differently localized export
// only needs a different YAML file, not a code change.
//
// CONFIGURATION SOURCES:
//   1. Built-in defaults (DefaultConfig)
//   2. A YAML file (config.yaml by default), overriding the defaults
//   3. Command-line flags, overriding both (applied in cmd/)
//
// Nothing is persisted back: configuration is read once per invocation.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// ENUMS
// =============================================================================

// Rounding modes for converting raw ticket counts to integers.
const (
	// RoundFloor rounds down. The default: a buyer never receives a
	// ticket they did not fully pay for.
	RoundFloor = "floor"

	// RoundNearest rounds to the nearest integer, halves away from zero
	// (math.Round semantics: 2.5 -> 3, -2.5 -> -3).
	RoundNearest = "nearest"
)

// Name display modes.
const (
	// NameFull shows "First Last" when both parts are present.
	NameFull = "full_name"

	// NameFirst reduces the resolved name to its first whitespace-
	// delimited token.
	NameFirst = "first_name_only"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// =========================================================================
	// TICKET SETTINGS
	// =========================================================================

	// UnitPrice is the price of one raffle ticket in kroner.
	// Must be positive. Default: 20.
	UnitPrice float64 `yaml:"unit_price"`

	// RoundingMode is "floor" or "nearest". Default: "floor".
	RoundingMode string `yaml:"rounding_mode"`

	// NameDisplayMode is "full_name" or "first_name_only".
	// Default: "full_name".
	NameDisplayMode string `yaml:"name_display_mode"`

	// TopN is the number of buyers shown in the per-artwork top table.
	// Default: 10.
	TopN int `yaml:"top_n"`

	// =========================================================================
	// REPORT MATCHING SETTINGS
	// =========================================================================

	// HeaderMarker is the column label that identifies the header row in
	// the raw grid. Matched case-insensitively as a distinct word.
	// Default: "Salgssted".
	HeaderMarker string `yaml:"header_marker"`

	// SaleTransactionType is the transaction-type value that marks a
	// completed sale. Compared trimmed and lowercased. Default: "sale".
	// The Norwegian Vipps export uses "salg"; see configs/vipps-norsk.yaml.
	SaleTransactionType string `yaml:"sale_transaction_type"`

	// TicketPhrase is the literal phrase a point-of-sale text must
	// contain for the row to count as a raffle ticket purchase. The
	// artwork letter is expected right after it.
	// Default: "ticket for artwork".
	TicketPhrase string `yaml:"ticket_phrase"`

	// Columns maps the logical fields to the report's column labels.
	Columns Columns `yaml:"columns"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// Output controls where and under which names export artifacts are
	// written.
	Output OutputConfig `yaml:"output"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of diagnostic logging.
	// Valid values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `yaml:"log_level"`
}

// Columns maps logical record fields to the column labels used by the
// report. Labels are case-sensitive and compared after whitespace trimming.
type Columns struct {
	// SaleLocation is the point-of-sale column; also the header marker
	// column. Required. Default: "Salgssted".
	SaleLocation string `yaml:"sale_location"`

	// TransactionType is the transaction-type column. Required.
	// Default: "Transaksjonstype".
	TransactionType string `yaml:"transaction_type"`

	// GrossAmount is the gross payment amount column. Required.
	// Default: "Brutto".
	GrossAmount string `yaml:"gross_amount"`

	// FirstName is the buyer first-name column. Optional.
	// Default: "Fornavn".
	FirstName string `yaml:"first_name"`

	// LastName is the buyer last-name column. Optional.
	// Default: "Etternavn".
	LastName string `yaml:"last_name"`

	// Message is the free-text payment message column, used as a name
	// fallback. Optional. Default: "Melding".
	Message string `yaml:"message"`

	// SaleDate is the sale date column. Optional. Default: "Salgsdato".
	SaleDate string `yaml:"sale_date"`
}

// Required returns the column labels the pipeline cannot run without.
func (c Columns) Required() []string {
	return []string{c.SaleLocation, c.TransactionType, c.GrossAmount}
}

// OutputConfig controls export artifact placement and naming.
type OutputConfig struct {
	// Dir is the directory export artifacts are written to.
	// Default: "./output".
	Dir string `yaml:"dir"`

	// WheelListFormat is the file-name format for per-artwork wheel
	// lists. Placeholders:
	//   {artwork}   - the artwork letter
	//   {timestamp} - run timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	// Default: "wheel_{artwork}.txt".
	WheelListFormat string `yaml:"wheel_list_format"`

	// WorkbookFormat is the file-name format for the results workbook.
	// Same placeholders as WheelListFormat, minus {artwork}.
	// Default: "lotteri_{timestamp}_{uuid}.xlsx".
	WorkbookFormat string `yaml:"workbook_format"`
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultConfig returns the built-in configuration, tuned for the Vipps
// export with the English ticket phrase.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file, applies defaults for unset fields
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads the given config file if it exists, and falls back to
// the built-in defaults when it does not. Used for the default config path
// so the tool works without any config file at all.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.UnitPrice == 0 {
		cfg.UnitPrice = 20
	}
	if cfg.RoundingMode == "" {
		cfg.RoundingMode = RoundFloor
	}
	if cfg.NameDisplayMode == "" {
		cfg.NameDisplayMode = NameFull
	}
	if cfg.TopN == 0 {
		cfg.TopN = 10
	}
	if cfg.HeaderMarker == "" {
		cfg.HeaderMarker = "Salgssted"
	}
	if cfg.SaleTransactionType == "" {
		cfg.SaleTransactionType = "sale"
	}
	if cfg.TicketPhrase == "" {
		cfg.TicketPhrase = "ticket for artwork"
	}

	if cfg.Columns.SaleLocation == "" {
		cfg.Columns.SaleLocation = "Salgssted"
	}
	if cfg.Columns.TransactionType == "" {
		cfg.Columns.TransactionType = "Transaksjonstype"
	}
	if cfg.Columns.GrossAmount == "" {
		cfg.Columns.GrossAmount = "Brutto"
	}
	if cfg.Columns.FirstName == "" {
		cfg.Columns.FirstName = "Fornavn"
	}
	if cfg.Columns.LastName == "" {
		cfg.Columns.LastName = "Etternavn"
	}
	if cfg.Columns.Message == "" {
		cfg.Columns.Message = "Melding"
	}
	if cfg.Columns.SaleDate == "" {
		cfg.Columns.SaleDate = "Salgsdato"
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./output"
	}
	if cfg.Output.WheelListFormat == "" {
		cfg.Output.WheelListFormat = "wheel_{artwork}.txt"
	}
	if cfg.Output.WorkbookFormat == "" {
		cfg.Output.WorkbookFormat = "lotteri_{timestamp}_{uuid}.xlsx"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values the pipeline would otherwise
// trip over at runtime. A non-positive unit price in particular must be
// rejected here, before any division happens.
func (c *Config) Validate() error {
	if c.UnitPrice <= 0 {
		return fmt.Errorf("unit_price must be a positive number, got %v", c.UnitPrice)
	}

	switch c.RoundingMode {
	case RoundFloor, RoundNearest:
	default:
		return fmt.Errorf("rounding_mode must be %q or %q, got %q", RoundFloor, RoundNearest, c.RoundingMode)
	}

	switch c.NameDisplayMode {
	case NameFull, NameFirst:
	default:
		return fmt.Errorf("name_display_mode must be %q or %q, got %q", NameFull, NameFirst, c.NameDisplayMode)
	}

	if c.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1, got %d", c.TopN)
	}
	if strings.TrimSpace(c.HeaderMarker) == "" {
		return fmt.Errorf("header_marker must not be empty")
	}
	if strings.TrimSpace(c.TicketPhrase) == "" {
		return fmt.Errorf("ticket_phrase must not be empty")
	}
	if strings.TrimSpace(c.SaleTransactionType) == "" {
		return fmt.Errorf("sale_transaction_type must not be empty")
	}

	for _, label := range c.Columns.Required() {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("required column labels (sale_location, transaction_type, gross_amount) must not be empty")
		}
	}

	return nil
}

// UnitPriceOre returns the unit price converted to integer øre.
func (c *Config) UnitPriceOre() int64 {
	return int64(c.UnitPrice*100 + 0.5)
}
